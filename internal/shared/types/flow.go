package types

// Screen is the top-level flow state
type Screen string

const (
	ScreenIntro   Screen = "intro"
	ScreenLogin   Screen = "login"
	ScreenDesktop Screen = "desktop"
)

// FlowState is the screen plus its overlays
type FlowState struct {
	Screen        Screen `json:"screen"`
	GoalOverlay   bool   `json:"goal_overlay"`
	LogoutConfirm bool   `json:"logout_confirm"`
	SearchOverlay bool   `json:"search_overlay"`
	SearchToast   bool   `json:"search_toast"`
}
