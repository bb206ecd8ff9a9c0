package usecase

import (
	"regexp"

	"github.com/matchasource/backend/internal/domain"
)

// lexiconEntry maps one free-text keyword to its canonical domain value.
// Entries are kept in ordered slices so dictionary scans are reproducible;
// several keywords may resolve to the same canonical value.
type lexiconEntry struct {
	Keyword   string
	Canonical string
}

// regionLexicon maps growing-area keywords to canonical origin region names.
var regionLexicon = []lexiconEntry{
	{"uji", "Uji, Kyoto"},
	{"kyoto", "Uji, Kyoto"},
	{"wazuka", "Wazuka, Kyoto"},
	{"nishio", "Nishio, Aichi"},
	{"aichi", "Nishio, Aichi"},
	{"yame", "Yame, Fukuoka"},
	{"fukuoka", "Yame, Fukuoka"},
	{"kagoshima", "Kagoshima"},
	{"kirishima", "Kagoshima"},
	{"shizuoka", "Shizuoka"},
}

// gradeLexicon maps quality keywords to canonical grade codes.
var gradeLexicon = []lexiconEntry{
	{"ceremonial", "CEREMONIAL"},
	{"premium", "PREMIUM"},
	{"culinary", "CULINARY"},
	{"cooking", "CULINARY"},
	{"latte", "CULINARY"},
	{"ingredient", "INGREDIENT"},
	{"industrial", "INGREDIENT"},
}

// certificationLexicon maps certification keywords to canonical labels.
var certificationLexicon = []lexiconEntry{
	{"organic", "organic"},
	{"jas", "jas"},
	{"usda organic", "usda organic"},
	{"usda", "usda organic"},
	{"eu organic", "eu organic"},
	{"halal", "halal"},
	{"kosher", "kosher"},
	{"iso 22000", "iso 22000"},
	{"iso22000", "iso 22000"},
	{"haccp", "haccp"},
	{"fair trade", "fair trade"},
	{"fairtrade", "fair trade"},
	{"rainforest alliance", "rainforest alliance"},
}

// countryLexicon maps destination keywords to ISO-2 country codes.
var countryLexicon = []lexiconEntry{
	{"singapore", "SG"},
	{"malaysia", "MY"},
	{"thailand", "TH"},
	{"vietnam", "VN"},
	{"indonesia", "ID"},
	{"philippines", "PH"},
	{"india", "IN"},
	{"china", "CN"},
	{"hong kong", "HK"},
	{"taiwan", "TW"},
	{"south korea", "KR"},
	{"korea", "KR"},
	{"japan", "JP"},
	{"australia", "AU"},
	{"new zealand", "NZ"},
	{"united states", "US"},
	{"usa", "US"},
	{"america", "US"},
	{"canada", "CA"},
	{"mexico", "MX"},
	{"brazil", "BR"},
	{"united kingdom", "GB"},
	{"uk", "GB"},
	{"britain", "GB"},
	{"germany", "DE"},
	{"france", "FR"},
	{"italy", "IT"},
	{"spain", "ES"},
	{"netherlands", "NL"},
	{"uae", "AE"},
	{"dubai", "AE"},
}

// regionKeywordSet lets the destination fallback skip any keyword that is also a
// region keyword, so an origin mention is never misread as a destination.
var regionKeywordSet = func() map[string]bool {
	set := make(map[string]bool, len(regionLexicon))
	for _, e := range regionLexicon {
		set[e.Keyword] = true
	}
	return set
}()

// countryWordRegexes holds a compiled whole-word matcher per country keyword,
// indexed in lexicon order.
var countryWordRegexes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(countryLexicon))
	for i, e := range countryLexicon {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(e.Keyword) + `\b`)
	}
	return res
}()

// destinationPattern captures the phrase after a shipping direction, e.g.
// "ship to singapore", "delivery to the uk".
var destinationPattern = regexp.MustCompile(`(?:ship(?:ping|ped)?|deliver(?:y|ed)?|export(?:ing)?)\s+to\s+([a-z][a-z\s]*)`)

// numericPattern is one entry of an ordered extraction list. The first pattern in
// a category whose regex matches wins; apply writes the captured groups into the
// parsed query with whatever unit normalization the pattern calls for.
type numericPattern struct {
	re    *regexp.Regexp
	apply func(q *domain.ParsedQuery, groups []string)
}

// quantityPatterns extract order-quantity bounds in kg. "minimum/at least N kg"
// deliberately sets a ceiling: buyers describe the largest minimum order they can
// accept, so products with MOQ above N are useless to them.
var quantityPatterns = []numericPattern{
	{
		re: regexp.MustCompile(`\bmoq\s*(?:of\s*)?(?:under|below|at most|up to|within)\s*(\d+(?:\.\d+)?)(?:\s*kg)?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.MOQMax = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\bmoq\s*(?:of\s*)?(?:over|above|more than)\s*(\d+(?:\.\d+)?)(?:\s*kg)?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.MOQMin = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\bmoq\s*(?:of\s*)?:?\s*(\d+(?:\.\d+)?)(?:\s*kg)?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.MOQMax = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:under|below|at most|up to)\s*(\d+(?:\.\d+)?)\s*kg\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.MOQMax = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:minimum|min|at least)\s*(?:order\s*)?(?:of\s*)?(\d+(?:\.\d+)?)\s*kg\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.MOQMax = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*kg\s*(?:moq|minimum|min)\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.MOQMax = parseFloatPtr(g[1])
		},
	},
}

// leadTimePatterns extract a lead-time ceiling in days. Weeks normalize to days.
var leadTimePatterns = []numericPattern{
	{
		re: regexp.MustCompile(`\b(?:under|within|less than|up to)\s*(\d+)\s*weeks?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.LeadTimeMax = parseDaysPtr(g[1], daysPerWeek)
		},
	},
	{
		re: regexp.MustCompile(`\b(?:under|within|less than|up to)\s*(\d+)\s*days?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.LeadTimeMax = parseDaysPtr(g[1], 1)
		},
	},
	{
		re: regexp.MustCompile(`\b(\d+)\s*weeks?\s*(?:lead|delivery|shipping|turnaround)\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.LeadTimeMax = parseDaysPtr(g[1], daysPerWeek)
		},
	},
	{
		re: regexp.MustCompile(`\b(\d+)\s*days?\s*(?:lead|delivery|shipping|turnaround)\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.LeadTimeMax = parseDaysPtr(g[1], 1)
		},
	},
	{
		re: regexp.MustCompile(`\blead\s*time\s*(?:of\s*)?(\d+)\s*weeks?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.LeadTimeMax = parseDaysPtr(g[1], daysPerWeek)
		},
	},
	{
		re: regexp.MustCompile(`\blead\s*time\s*(?:of\s*)?(\d+)\s*days?\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.LeadTimeMax = parseDaysPtr(g[1], 1)
		},
	},
}

const daysPerWeek = 7

// Approximate price bands: "around $N" becomes [0.8N, 1.2N].
const (
	approxPriceLowFactor  = 0.8
	approxPriceHighFactor = 1.2
)

// pricePatterns extract unit-price bounds in USD. Bare numbers never match; a
// currency marker ($, usd, dollars) is required so kg quantities stay untouched.
var pricePatterns = []numericPattern{
	{
		re: regexp.MustCompile(`\bbetween\s*\$?\s*(\d+(?:\.\d+)?)\s*(?:and|to|-)\s*\$?\s*(\d+(?:\.\d+)?)`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.PriceMin = parseFloatPtr(g[1])
			q.PriceMax = parseFloatPtr(g[2])
		},
	},
	{
		re: regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)\s*(?:-|to)\s*\$?\s*(\d+(?:\.\d+)?)`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.PriceMin = parseFloatPtr(g[1])
			q.PriceMax = parseFloatPtr(g[2])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:under|below|less than|cheaper than|at most)\s*\$\s*(\d+(?:\.\d+)?)`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.PriceMax = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:under|below|less than|cheaper than|at most)\s*(\d+(?:\.\d+)?)\s*(?:usd|dollars?)\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.PriceMax = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:over|above|more than|at least)\s*\$\s*(\d+(?:\.\d+)?)`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.PriceMin = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:over|above|more than|at least)\s*(\d+(?:\.\d+)?)\s*(?:usd|dollars?)\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			q.PriceMin = parseFloatPtr(g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:around|about|approximately|roughly)\s*\$\s*(\d+(?:\.\d+)?)`),
		apply: func(q *domain.ParsedQuery, g []string) {
			applyApproxPrice(q, g[1])
		},
	},
	{
		re: regexp.MustCompile(`\b(?:around|about|approximately|roughly)\s*(\d+(?:\.\d+)?)\s*(?:usd|dollars?)\b`),
		apply: func(q *domain.ParsedQuery, g []string) {
			applyApproxPrice(q, g[1])
		},
	},
}

// queryStopWords are dropped from the residual keyword list: basic English stop
// words, units, and the constraint vocabulary the numeric patterns feed on.
var queryStopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"it": true, "as": true, "be": true, "we": true, "i": true,
	"my": true, "our": true, "me": true, "you": true, "your": true,
	"some": true, "any": true, "per": true, "that": true, "this": true,
	// Buyer phrasing
	"need": true, "needs": true, "needed": true, "want": true, "wants": true,
	"looking": true, "look": true, "buy": true, "buying": true, "order": true,
	"please": true, "find": true, "get": true, "source": true, "sourcing": true,
	// Shipping vocabulary consumed by the destination pattern
	"ship": true, "shipping": true, "shipped": true, "deliver": true,
	"delivery": true, "delivered": true, "export": true, "exporting": true,
	"send": true,
	// Constraint vocabulary consumed by the numeric patterns
	"under": true, "below": true, "over": true, "above": true, "around": true,
	"about": true, "approximately": true, "roughly": true, "between": true,
	"within": true, "up": true, "least": true, "most": true, "less": true,
	"more": true, "than": true, "max": true, "maximum": true, "min": true,
	"minimum": true, "moq": true, "lead": true, "time": true, "turnaround": true,
	// Units and currency words
	"kg": true, "kilo": true, "kilos": true, "kilogram": true, "kilograms": true,
	"gram": true, "grams": true, "g": true, "ton": true, "tons": true,
	"week": true, "weeks": true, "day": true, "days": true, "month": true,
	"months": true, "usd": true, "dollar": true, "dollars": true,
	"price": true, "priced": true, "cost": true, "grade": true,
}
