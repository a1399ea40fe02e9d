package measure

// Keyword lookup tables for text-attribute extraction. All matching is
// case-insensitive substring testing against the lower-cased caption
// text. Table order is priority order and must stay fixed: the first
// matching row wins where a single categorical value is required, and
// set-valued outputs follow definition order so results stay
// reproducible for identical input.

// keywordRule pairs a result label with the keywords that select it.
type keywordRule struct {
	label    string
	keywords []string
}

// frameGeometryRules, tested in priority order.
var frameGeometryRules = []keywordRule{
	{"rectangular", []string{"rectangular", "square", "boxy"}},
	{"round", []string{"round", "circular"}},
	{"cat-eye", []string{"cat-eye", "cat eye"}},
	{"aviator", []string{"aviator", "pilot"}},
	{"oval", []string{"oval"}},
	{"browline", []string{"browline", "clubmaster"}},
	{"wayfarer", []string{"wayfarer"}},
}

// transparencyRules: "transparent" deliberately outranks "opaque" when
// both keyword sets are present.
var transparencyRules = []keywordRule{
	{"transparent", []string{"transparent", "clear"}},
	{"opaque", []string{"opaque", "solid"}},
	{"semi-transparent", []string{"tinted"}},
}

// colorPalette is the fixed 13-term palette, in canonical output order.
var colorPalette = []string{
	"black", "brown", "gold", "silver", "red",
	"blue", "green", "white", "grey", "gray",
	"tortoise", "transparent", "clear",
}

// maxDominantColors bounds the dominant color set.
const maxDominantColors = 5

// textureVocabulary is the fixed 9-term texture vocabulary.
var textureVocabulary = []string{
	"textured", "patterned", "matte",
	"glossy", "brushed", "polished",
	"tortoiseshell", "marbled", "metal",
}

// Wirecore cues: "wire" asserts a visible wirecore; bulky-material
// terms deny it; anything else is undetermined.
var (
	wirecoreYes = []string{"wire"}
	wirecoreNo  = []string{"plastic", "acetate", "thick"}
)

// Kids-suitability cues.
var (
	kidsYes = []string{"kids", "child"}
	kidsNo  = []string{"adult", "professional"}
)

// Gender-expression keyword lists for the product-level caption-count
// rule. Substring matching applies here too, so e.g. "women" also
// counts as "men"; this mirrors the reference behavior exactly.
var (
	masculineKeywords = []string{"masculine", "men", "male", "bold", "angular", "strong", "thick frame"}
	feminineKeywords  = []string{"feminine", "women", "female", "delicate", "curved", "thin frame", "cat-eye", "round"}
	unisexKeywords    = []string{"unisex", "neutral", "versatile", "classic"}
)

// genderKeywordWeight scales the net keyword count before the ±5 cap.
const genderKeywordWeight = 1.5
