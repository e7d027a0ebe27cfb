package pad

// Button bitmasks as they appear in the default (text row) encoding.
const (
	ButtonY       Button = 0x0001
	ButtonB       Button = 0x0002
	ButtonA       Button = 0x0004
	ButtonX       Button = 0x0008
	ButtonL       Button = 0x0010
	ButtonR       Button = 0x0020
	ButtonZL      Button = 0x0040
	ButtonZR      Button = 0x0080
	ButtonMinus   Button = 0x0100
	ButtonPlus    Button = 0x0200
	ButtonLClick  Button = 0x0400
	ButtonRClick  Button = 0x0800
	ButtonHome    Button = 0x1000
	ButtonCapture Button = 0x2000

	// Handheld console names sharing a bit with the buttons above.
	ButtonSelect   = ButtonMinus
	ButtonStart    = ButtonPlus
	ButtonPower    = ButtonLClick
	ButtonWireless = ButtonRClick

	ButtonMask Button = 0x3FFF
)

const (
	HatTop Hat = iota
	HatTopRight
	HatRight
	HatBottomRight
	HatBottom
	HatBottomLeft
	HatLeft
	HatTopLeft
	HatCenter
)

const (
	StickLeft Stick = iota + 1
	StickRight
)

const (
	TiltUp Tilt = iota + 1
	TiltRight
	TiltDown
	TiltLeft
	TiltRUp
	TiltRRight
	TiltRDown
	TiltRLeft
)

// Stick axis values in device units.
const (
	AxisMin    uint8 = 0
	AxisCenter uint8 = 128
	AxisMax    uint8 = 255
)

// Touch panel logical space.
const (
	TouchWidth  uint16 = 320
	TouchHeight uint8  = 240
)

// Text row flags carried in the two low bits of the button field.
const (
	RowFlagRightStick = 0x1
	RowFlagLeftStick  = 0x2
	RowButtonShift    = 2

	// RowEnd is the termination line of the text encoding.
	RowEnd = "end"
)

// Qingpi frame layout.
const (
	QingpiHeader    = 0xAB
	QingpiFrameSize = 11
)

// 3DS controller frame layout.
const (
	ThreeDSHeader1   = 0xA1
	ThreeDSHeader2   = 0xA2
	ThreeDSFrameSize = 6
)
