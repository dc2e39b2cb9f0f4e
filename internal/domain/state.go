package domain

// Flow identifies a multi-step conversation a user can be inside of
type Flow int

const (
	FlowNone Flow = iota
	FlowRegistration
	FlowCreateAd
	FlowEditProfile
	FlowEditAd
	FlowViewAds
	FlowContactSeller
	FlowAdminBroadcast
	FlowAdminBlock
	FlowAdminViewAds
)

// Step identifies which field within a flow is being collected
type Step int

const (
	StepNone Step = iota

	// Registration
	StepRegNick
	StepRegGameID

	// CreateAd
	StepAdTitle
	StepAdDescription
	StepAdPrice
	StepAdCategory
	StepAdPhotos
	StepAdConfirm

	// EditProfile
	StepProfileNick
	StepProfileGameID

	// EditAd
	StepEditTitle
	StepEditDescription
	StepEditPrice
	StepEditPhotos

	// ViewAds
	StepBrowsing

	// ContactSeller
	StepSellerMessage

	// Admin
	StepBroadcastMessage
	StepBlockUserID
	StepAdminReview
)

// AdDraft accumulates ad fields during the creation flow
type AdDraft struct {
	Title       string
	Description string
	Price       string
	Category    Category
	Photos      []string
}

// State tracks a user's position inside a flow plus in-progress input.
// Nothing here is persisted: data only reaches storage at a flow's
// terminal step, and an in-progress flow is lost on restart.
type State struct {
	Flow Flow
	Step Step

	// Registration scratch
	RegNick string

	// CreateAd scratch
	Draft AdDraft

	// EditAd scratch
	EditingAdID int64
	NewPhotos   []string

	// ContactSeller scratch
	SellerID    int64
	ContactAdID int64

	// AdminBlock scratch
	Unblock bool

	// ViewAds / admin review cursors
	BrowseCategory Category
	Page           int
	AdminPage      int
}

// Idle reports whether no flow is active
func (s *State) Idle() bool {
	return s == nil || s.Flow == FlowNone
}
