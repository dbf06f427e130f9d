package engine

// Static noise-instrument scripts. Each is a sequence of
// {durationNibble, (volume<<4)|fadeNibble, frequency} triples terminated by
// 0xFF (the same sentinel as sound_ret at the top level), copied byte-exact
// from the original noise-note table constants.
var (
	drumKick1     = []byte{32, 0x88, 107, 32, 0x71, 0, 0xFF}
	drumKick2     = []byte{32, 0xA8, 107, 32, 0x71, 0, 0xFF}
	drumSnare1    = []byte{32, 0xC1, 51, 0xFF}
	drumSnare2    = []byte{32, 0xB1, 51, 0xFF}
	drumSnare3    = []byte{32, 0xA1, 51, 0xFF}
	drumSnare4    = []byte{32, 0x81, 51, 0xFF}
	drumSnare5    = []byte{32, 0x82, 35, 0xFF}
	drumSnare6    = []byte{32, 0x82, 37, 0xFF}
	drumSnare7    = []byte{32, 0x82, 38, 0xFF}
	drumSnare8    = []byte{32, 0xA2, 80, 0xFF}
	drumSnare9    = []byte{32, 0x91, 34, 0xFF}
	drumSnare10   = []byte{32, 0x71, 34, 0xFF}
	drumSnare11   = []byte{32, 0x61, 34, 0xFF}
	drumSnare12   = []byte{32, 0x91, 51, 0xFF}
	drumSnare13   = []byte{32, 0x51, 50, 0xFF}
	drumSnare14   = []byte{32, 0x81, 49, 0xFF}
	drumHiHat1    = []byte{32, 0x81, 16, 0xFF}
	drumHiHat2    = []byte{32, 0xA1, 16, 0xFF}
	drumHiHat3    = []byte{32, 0xA2, 17, 0xFF}
	drumTriangle1 = []byte{32, 0x51, 42, 0xFF}
	drumTriangle2 = []byte{33, 0x41, 43, 32, 0x61, 42, 0xFF}
	drumTriangle3 = []byte{32, 0xA1, 24, 32, 0x31, 51, 0xFF}
	drumTriangle4 = []byte{34, 0x91, 40, 32, 0x71, 24, 0xFF}
	drumTriangle5 = []byte{48, 0x91, 24, 0xFF}
	drum00        = []byte{32, 0x11, 0, 0xFF}
	drum05        = []byte{39, 0x84, 55, 38, 0x84, 54, 37, 0x83, 53, 36, 0x83, 52, 35, 0x82, 51, 34, 0x81, 50, 0xFF}
	drum20        = []byte{32, 0x11, 17, 0xFF}
	drum21        = []byte{0xFF} // the "rest drum": a bare sound_ret, intentional in the original
	drum27        = []byte{39, 0x92, 16, 0xFF}
	drum28        = []byte{51, 0x91, 0, 51, 0x11, 0, 0xFF}
	drum29        = []byte{51, 0x91, 17, 51, 0x11, 0, 0xFF}
	drum31        = []byte{51, 0x51, 33, 51, 0x11, 17, 0xFF}
	drum32        = []byte{51, 0x51, 80, 51, 0x11, 17, 0xFF}
	drum33        = []byte{32, 0xA1, 49, 0xFF}
	drum35        = []byte{51, 0x81, 0, 51, 0x11, 0, 0xFF}
	drum36        = []byte{51, 0x81, 33, 51, 0x11, 17, 0xFF}
	drumCrash1    = []byte{51, 0x88, 21, 32, 0x65, 18, 0xFF}
	drumCrash2    = []byte{32, 0x84, 18, 0xFF}
)

// drumkits are the six sets of 13 drumkit pointers a noise-channel music
// track indexes by instrument number (toggle_noise's drumkit byte).
var drumkits = [6][13][]byte{
	{drum00, drumSnare1, drumSnare2, drumSnare3, drumSnare4, drum05, drumTriangle1, drumTriangle2, drumHiHat1, drumSnare5, drumSnare6, drumSnare7, drumHiHat2},
	{drum00, drumHiHat1, drumSnare5, drumSnare6, drumSnare7, drumHiHat2, drumHiHat3, drumSnare8, drumTriangle3, drumTriangle4, drumSnare9, drumSnare10, drumSnare11},
	{drum00, drumSnare1, drumSnare9, drumSnare10, drumSnare11, drum05, drumTriangle1, drumTriangle2, drumHiHat1, drumSnare5, drumSnare6, drumSnare7, drumHiHat2},
	{drum21, drumSnare12, drumSnare13, drumSnare14, drumKick1, drumTriangle5, drum20, drum27, drum28, drum29, drum21, drumKick2, drumCrash2},
	{drum21, drum20, drumSnare13, drumSnare14, drumKick1, drum33, drumTriangle5, drum35, drum31, drum32, drum36, drumKick2, drumCrash1},
	{drum00, drumSnare9, drumSnare10, drumSnare11, drum27, drum28, drum29, drum05, drumTriangle1, drumCrash1, drumSnare14, drumSnare13, drumKick2},
}
