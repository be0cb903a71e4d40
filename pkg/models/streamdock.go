package models

// StreamDock device the generated profiles target.
const (
	DeviceModel = "20GBA9901"
	DeviceUUID  = "293V3"

	Columns = 5
	Rows    = 3

	ManifestVersion = "1.0"
)

// Action UUIDs understood by the StreamDock software and the Mirabox
// VTube Studio plugin.
const (
	ActionPagePrevious  = "com.hotspot.streamdock.page.previous"
	ActionPageNext      = "com.hotspot.streamdock.page.next"
	ActionProfileRotate = "com.hotspot.streamdock.profile.rotate"
	ActionSwitchModel   = "com.mirabox.streamdock.VtubeStudio.action1"
	ActionTriggerHotkey = "com.mirabox.streamdock.VtubeStudio.action2"
)

// Default file and directory names shared between the pipeline stages.
const (
	CatalogFile = "models_hotkeys.json"
	UUIDFile    = "profile_uuids.json"
	OutputDir   = "StreamDeck_Profiles"
	ImagesDir   = "Images"
	DefaultIcon = "default.png"

	ImgPrevPage = "Images/btn_previousPage.png"
	ImgNextPage = "Images/btn_nextPage.png"
	ImgVTSLogo  = "Images/vts_logo.png"

	ProfileSuffix = ".sdProfile"
)

// VTube Studio plugin identity used during API authentication.
const (
	PluginName      = "StreamDeck VTube Studio"
	PluginDeveloper = "Mirabox"

	DefaultAPIAddress = "ws://localhost:8001"
)
