package engine

// frequencyTable holds the rest entry followed by two octaves of semitone
// period values (C through B, twice). Higher octaves are derived by right
// shift rather than a third table entry, matching the hardware's 2^n period
// relationship between octaves.
var frequencyTable = [25]uint16{
	0x0000, // rest

	0xF82C, // C_
	0xF89D, // C#
	0xF907, // D_
	0xF96B, // D#
	0xF9CA, // E_
	0xFA23, // F_
	0xFA77, // F#
	0xFAC7, // G_
	0xFB12, // G#
	0xFB58, // A_
	0xFB9B, // A#
	0xFBDA, // B_

	0xFC16, // C_
	0xFC4E, // C#
	0xFC83, // D_
	0xFCB5, // D#
	0xFCE5, // E_
	0xFD11, // F_
	0xFD3B, // F#
	0xFD63, // G_
	0xFD89, // G#
	0xFDAC, // A_
	0xFDCD, // A#
	0xFDED, // B_
}

// WavePatterns are the ten built-in 32-nibble wave RAM patterns a host can
// feed to apu.SetWavePattern for the wave channel's preset timbres.
var WavePatterns = [10]string{
	"02468ACEFFFEDDCBBA98765444332211",
	"02468ACEEFFFFEEECCBBA98765432211",
	"1369BDEEEEFFFFEDDEFFFFEEEEDB9631",
	"02468ACDEFFEDEFFEEDCBA9876543210",
	"012345678ACDEEF77FEEDCA876543210",
	"0011223344332211FFEECCAA88AACCEE",
	"02468ACECBA98765FFFEEDDC44332211",
	"C0A987F5FFFEEDDC443322F102468ACE",
	"4433221F00468ACEF8FEEDDCCBA98765",
	"110000080013579AB4BAA99887654321",
}

// panSeedTable maps a hardware channel index (0=pulse1..3=noise) to its
// single-bit stereo seed mask ({right, left} identical bit repeated), used to
// initialise a track's panning on channel start and as the base mask of the
// stereo_panning/force_stereo_panning commands. The original
// source keeps two identical tables (gscaGetLRTracks, gscaGetMonoTracks);
// this implementation collapses them into one, see DESIGN.md.
var panSeedTable = [4]uint8{0x11, 0x22, 0x44, 0x88}
