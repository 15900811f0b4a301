package transliteration

type unitFlag uint8

const (
	flagSmall unitFlag = 1 << iota
	flagSmallTsu
	flagNasal
	flagLongMark
	flagPunctuation
	// flagOneWay units are rendered from kana but never parsed from Romaji.
	flagOneWay
)

// entry is the static description of one unit. The katakana form is
// derived from the hiragana one unless katakana is set.
type entry struct {
	kana     string
	katakana string
	spell    [numConventions]string
	aliases  []string
	flags    unitFlag
}

// same builds a unit spelled identically in every convention.
func same(kana, romaji string, aliases ...string) entry {
	return entry{kana: kana, spell: [numConventions]string{romaji, romaji, romaji}, aliases: aliases}
}

// split builds a unit whose Hepburn spelling differs from the Kunrei and
// Nihon-shiki one.
func split(kana, hepburn, kunrei string, aliases ...string) entry {
	return entry{kana: kana, spell: [numConventions]string{hepburn, kunrei, kunrei}, aliases: aliases}
}

func small(kana, romaji string, aliases ...string) entry {
	e := same(kana, romaji, aliases...)
	e.flags |= flagSmall
	return e
}

func punct(glyph, romaji string) entry {
	return entry{kana: glyph, katakana: glyph, spell: [numConventions]string{romaji, romaji, romaji}, flags: flagPunctuation}
}

// katakanaAliases are katakana-only glyphs that read as an existing unit.
var katakanaAliases = map[string]string{
	"ヷ": "ゔぁ",
	"ヸ": "ゔぃ",
	"ヹ": "ゔぇ",
	"ヺ": "ゔぉ",
}

// spell-checker: disable

var entries = []entry{
	// Vowels
	same("あ", "a"),
	same("い", "i"),
	same("う", "u"),
	same("え", "e"),
	same("お", "o"),
	small("ぁ", "xa"),
	small("ぃ", "xi"),
	small("ぅ", "xu"),
	small("ぇ", "xe"),
	small("ぉ", "xo"),

	// K / G
	same("か", "ka", "ca"),
	same("き", "ki"),
	same("く", "ku", "cu"),
	same("け", "ke"),
	same("こ", "ko", "co"),
	same("きゃ", "kya"),
	same("きゅ", "kyu"),
	same("きぇ", "kye"),
	same("きょ", "kyo"),
	same("が", "ga"),
	same("ぎ", "gi"),
	same("ぐ", "gu"),
	same("げ", "ge"),
	same("ご", "go"),
	same("ぎゃ", "gya"),
	same("ぎゅ", "gyu"),
	same("ぎょ", "gyo"),
	same("くぁ", "kwa", "qa", "qwa"),
	same("くぃ", "kwi", "qi", "qwi"),
	same("くぇ", "kwe", "qe", "qwe"),
	same("くぉ", "kwo", "qo", "qwo"),
	same("ぐぁ", "gwa"),
	small("ゕ", "xka", "lka"),
	small("ゖ", "xke", "lke"),

	// S / Z
	same("さ", "sa"),
	split("し", "shi", "si"),
	same("す", "su"),
	same("せ", "se"),
	same("そ", "so"),
	split("しゃ", "sha", "sya"),
	split("しゅ", "shu", "syu"),
	split("しぇ", "she", "sye"),
	split("しょ", "sho", "syo"),
	same("すぃ", "swi"),
	same("ざ", "za"),
	split("じ", "ji", "zi"),
	same("ず", "zu"),
	same("ぜ", "ze"),
	same("ぞ", "zo"),
	split("じゃ", "ja", "zya", "jya"),
	split("じゅ", "ju", "zyu", "jyu"),
	split("じぇ", "je", "zye", "jye"),
	split("じょ", "jo", "zyo", "jyo"),

	// T / D
	same("た", "ta"),
	split("ち", "chi", "ti"),
	split("つ", "tsu", "tu"),
	same("て", "te"),
	same("と", "to"),
	split("ちゃ", "cha", "tya", "cya"),
	split("ちゅ", "chu", "tyu", "cyu"),
	split("ちぇ", "che", "tye", "cye"),
	split("ちょ", "cho", "tyo", "cyo"),
	same("つぁ", "tsa"),
	same("つぃ", "tsi"),
	same("つぇ", "tse"),
	same("つぉ", "tso"),
	same("てぃ", "thi"),
	same("てゅ", "thu"),
	same("とぅ", "twu"),
	same("だ", "da"),
	same("ぢ", "di"),
	same("づ", "du"),
	same("で", "de"),
	same("ど", "do"),
	same("ぢゃ", "dya"),
	same("ぢゅ", "dyu"),
	same("ぢょ", "dyo"),
	same("でぃ", "dhi"),
	same("でゅ", "dhu"),
	same("どぅ", "dwu"),

	// N
	same("な", "na"),
	same("に", "ni"),
	same("ぬ", "nu"),
	same("ね", "ne"),
	same("の", "no"),
	same("にゃ", "nya"),
	same("にゅ", "nyu"),
	same("にょ", "nyo"),

	// H / B / P
	same("は", "ha"),
	same("ひ", "hi"),
	split("ふ", "fu", "hu"),
	same("へ", "he"),
	same("ほ", "ho"),
	same("ひゃ", "hya"),
	same("ひゅ", "hyu"),
	same("ひょ", "hyo"),
	same("ふぁ", "fa"),
	same("ふぃ", "fi"),
	same("ふぇ", "fe"),
	same("ふぉ", "fo"),
	same("ふゅ", "fyu"),
	same("ば", "ba"),
	same("び", "bi"),
	same("ぶ", "bu"),
	same("べ", "be"),
	same("ぼ", "bo"),
	same("びゃ", "bya"),
	same("びゅ", "byu"),
	same("びょ", "byo"),
	same("ぱ", "pa"),
	same("ぴ", "pi"),
	same("ぷ", "pu"),
	same("ぺ", "pe"),
	same("ぽ", "po"),
	same("ぴゃ", "pya"),
	same("ぴゅ", "pyu"),
	same("ぴょ", "pyo"),

	// M
	same("ま", "ma"),
	same("み", "mi"),
	same("む", "mu"),
	same("め", "me"),
	same("も", "mo"),
	same("みゃ", "mya"),
	same("みゅ", "myu"),
	same("みょ", "myo"),

	// Y
	same("や", "ya"),
	same("ゆ", "yu"),
	same("よ", "yo"),
	same("いぇ", "ye"),
	small("ゃ", "xya", "lya"),
	small("ゅ", "xyu", "lyu"),
	small("ょ", "xyo", "lyo"),

	// R
	same("ら", "ra", "la"),
	same("り", "ri", "li"),
	same("る", "ru", "lu"),
	same("れ", "re", "le"),
	same("ろ", "ro", "lo"),
	same("りゃ", "rya"),
	same("りゅ", "ryu"),
	same("りょ", "ryo"),

	// W
	same("わ", "wa"),
	same("ゐ", "wi"),
	same("ゑ", "we"),
	same("を", "wo"),
	same("うぃ", "whi"),
	same("うぇ", "whe"),
	same("うぉ", "who"),
	small("ゎ", "xwa", "lwa"),

	// V
	same("ゔ", "vu"),
	same("ゔぁ", "va"),
	same("ゔぃ", "vi"),
	same("ゔぇ", "ve"),
	same("ゔぉ", "vo"),

	// Special moras
	{kana: "ん", spell: [numConventions]string{"n", "n", "n"}, aliases: []string{"xn"}, flags: flagNasal},
	{kana: "っ", spell: [numConventions]string{"xtu", "xtu", "xtu"}, aliases: []string{"xtsu", "ltu", "ltsu"}, flags: flagSmall | flagSmallTsu},
	{kana: "ー", katakana: "ー", spell: [numConventions]string{"-", "-", "-"}, flags: flagLongMark},

	// Punctuation, full-width on the kana side.
	punct("。", "."),
	punct("、", ","),
	punct("：", ":"),
	punct("・", "/"),
	punct("！", "!"),
	punct("？", "?"),
	punct("〜", "~"),
	punct("「", "‘"),
	punct("」", "’"),
	punct("『", "“"),
	punct("』", "”"),
	punct("［", "["),
	punct("］", "]"),
	punct("（", "("),
	punct("）", ")"),
	punct("｛", "{"),
	punct("｝", "}"),
	{kana: "　", katakana: "　", spell: [numConventions]string{" ", " ", " "}, flags: flagPunctuation | flagOneWay},
}
