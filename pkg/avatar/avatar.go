// Package avatar derives avataaars avatar parameters from a seed such as an email address.
// The same seed always yields the same avatar, and the frontend computes identical values.
package avatar

import (
	"net/url"
	"strings"
)

const baseURL = "https://avataaars.io/"

type option struct {
	key    string
	values []string
}

// options are walked in order; the index of each group perturbs the seed.
var options = []option{
	{"avatarStyle", []string{"Circle", "Transparent"}},
	{"topType", []string{
		"NoHair", "Eyepatch", "Hat", "Hijab", "Turban", "WinterHat1", "WinterHat2", "WinterHat3", "WinterHat4",
		"LongHairBigHair", "LongHairBob", "LongHairBun", "LongHairCurly", "LongHairCurvy", "LongHairDreads",
		"LongHairFrida", "LongHairFro", "LongHairFroBand", "LongHairNotTooLong", "LongHairShavedSides",
		"LongHairMiaWallace", "LongHairStraight", "LongHairStraight2", "LongHairStraightStrand",
		"ShortHairDreads01", "ShortHairDreads02", "ShortHairFrizzle", "ShortHairShaggyMullet",
		"ShortHairShortCurly", "ShortHairShortFlat", "ShortHairShortRound", "ShortHairShortWaved",
		"ShortHairSides", "ShortHairTheCaesar", "ShortHairTheCaesarSidePart",
	}},
	{"accessoriesType", []string{"Blank", "Kurt", "Prescription01", "Prescription02", "Round", "Sunglasses", "Wayfarers"}},
	{"hairColor", []string{"Auburn", "Black", "Blonde", "BlondeGolden", "Brown", "BrownDark", "PastelPink", "Platinum", "Red", "SilverGray"}},
	{"facialHairType", []string{"Blank", "BeardMedium", "BeardLight", "BeardMajestic", "MoustacheFancy", "MoustacheMagnum"}},
	{"clotheType", []string{
		"BlazerShirt", "BlazerSweater", "CollarSweater", "GraphicShirt", "Hoodie", "Overall",
		"ShirtCrewNeck", "ShirtScoopNeck", "ShirtVNeck",
	}},
	{"eyeType", []string{"Close", "Cry", "Default", "Dizzy", "EyeRoll", "Happy", "Hearts", "Side", "Squint", "Surprised", "Wink", "WinkWacky"}},
	{"eyebrowType", []string{
		"Angry", "AngryNatural", "Default", "DefaultNatural", "FlatNatural", "RaisedExcited", "RaisedExcitedNatural",
		"SadConcerned", "SadConcernedNatural", "UnibrowNatural", "UpDown", "UpDownNatural",
	}},
	{"mouthType", []string{"Concerned", "Default", "Disbelief", "Eating", "Grimace", "Sad", "ScreamOpen", "Serious", "Smile", "Tongue", "Twinkle", "Vomit"}},
	{"skinColor", []string{"Tanned", "Yellow", "Pale", "Light", "Brown", "DarkBrown", "Black"}},
}

// Deterministic returns the avatar parameters for seed. Seeds are compared case-insensitively.
func Deterministic(seed string) map[string]string {
	seed = strings.ToLower(strings.TrimSpace(seed))
	if seed == "" {
		seed = "default-user"
	}

	h := hash(seed)
	config := make(map[string]string, len(options))
	for i, opt := range options {
		v := int64(h) + int64(i)*1000
		if v < 0 {
			v = -v
		}
		config[opt.key] = opt.values[v%int64(len(opt.values))]
	}
	return config
}

// URL renders config as an avataaars image URL.
func URL(config map[string]string) string {
	params := url.Values{}
	for k, v := range config {
		params.Set(k, v)
	}
	return baseURL + "?" + params.Encode()
}

// hash is the 32-bit "h*31 + c" string hash over UTF-16 code units.
func hash(s string) int32 {
	var h int32
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			h = h*31 + int32(0xD800+(r>>10))
			h = h*31 + int32(0xDC00+(r&0x3FF))
			continue
		}
		h = h*31 + int32(r)
	}
	return h
}
