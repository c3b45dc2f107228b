package client

// VoiceSettings mirrors the GET_VOICE_SETTINGS response structure
// (https://discord.com/developers/docs/topics/rpc#getvoicesettings).
// Optional fields are pointers so that unset values are never sent on
// SET_VOICE_SETTINGS.
type VoiceSettings struct {
	Input                *VoiceDeviceSettings `json:"input,omitempty"`
	Output               *VoiceDeviceSettings `json:"output,omitempty"`
	Mode                 *VoiceModeSettings   `json:"mode,omitempty"`
	AutomaticGainControl *bool                `json:"automatic_gain_control,omitempty"`
	EchoCancellation     *bool                `json:"echo_cancellation,omitempty"`
	NoiseSuppression     *bool                `json:"noise_suppression,omitempty"`
	QoS                  *bool                `json:"qos,omitempty"`
	SilenceWarning       *bool                `json:"silence_warning,omitempty"`
	Deaf                 *bool                `json:"deaf,omitempty"`
	Mute                 *bool                `json:"mute,omitempty"`
}

// VoiceDeviceSettings describes an input or output device selection.
// Volume is a percentage: input 0-100, output 0-200.
type VoiceDeviceSettings struct {
	DeviceID         string        `json:"device_id,omitempty"`
	Volume           *float32      `json:"volume,omitempty"`
	AvailableDevices []VoiceDevice `json:"available_devices,omitempty"`
}

// VoiceDevice is one selectable audio device.
type VoiceDevice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VoiceMode selects between push-to-talk and voice activity.
type VoiceMode string

const (
	VoiceModePushToTalk    VoiceMode = "PUSH_TO_TALK"
	VoiceModeVoiceActivity VoiceMode = "VOICE_ACTIVITY"
)

// VoiceModeSettings describes how voice transmission is triggered.
type VoiceModeSettings struct {
	Type          VoiceMode          `json:"type,omitempty"`
	AutoThreshold *bool              `json:"auto_threshold,omitempty"`
	Threshold     *float32           `json:"threshold,omitempty"`
	Shortcut      []ShortcutKeyCombo `json:"shortcut,omitempty"`
	Delay         *float32           `json:"delay,omitempty"`
}

// ShortcutKeyType discriminates the keys in a shortcut combo.
type ShortcutKeyType int

const (
	ShortcutKeyboardKey         ShortcutKeyType = 0
	ShortcutMouseButton         ShortcutKeyType = 1
	ShortcutKeyboardModifierKey ShortcutKeyType = 2
	ShortcutGamepadButton       ShortcutKeyType = 3
)

// ShortcutKeyCombo is one key of a push-to-talk shortcut.
type ShortcutKeyCombo struct {
	Type ShortcutKeyType `json:"type"`
	Code int             `json:"code"`
	Name string          `json:"name"`
}
