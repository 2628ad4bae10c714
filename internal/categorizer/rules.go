package categorizer

import "regexp"

// TextMaxLength is the exclusive upper bound, in runes, on title and anchor
// text that is matched against the text rules.
const TextMaxLength = 50

// Rule pairs a category with the pattern that selects it.
type Rule struct {
	Category string
	Pattern  *regexp.Regexp
}

type ruleDef struct {
	category string
	pattern  string
}

// Earlier entries win. Specific hosts precede the generic prefixes.
var domainRuleDefs = []ruleDef{
	{"blog", `blog\..*`},
	{"blog", `medium\.com$`},
	{"community", `community\..*`},
	{"community", `forum\..*`},
	{"documentation", `docs\..*`},
	{"e-commerce", `amazon\.com$`},
	{"e-commerce", `ebay\.com$`},
	{"jobs", `teamtailor\.com$`},
	{"jobs", `^(jobs\.|careers?\.).*`},
	{"jobs", `job-boards.greenhouse.io`},
	{"newsletter", `substack\.(com|net|app)$`},
	{"podcast", `podcasts?\..*`},
	{"social media", `youtube\.com$`},
	{"social media", `youtu.be$`},
	{"social media", `discord(app)?\.com$|discord\.gg$`},
	{"social media", `t\.me$|telegram\.(me|org)$`},
	{"social media", `slack\.(com|net|app)$`},
	{"social media", `reddit\.(com|net|app)$`},
	{"social media", `pinterest\.(com|net|app)$`},
	{"social media", `twitch\.(com|tv)$`},
	{"social media", `(facebook|fb)\.com$`},
	{"social media", `linkedin\.com`},
	{"social media", `twitter\.com$|^x\.com$`},
	{"social media", `instagram\.com$`},
	{"support", `support\..*`},
}

var pathRuleDefs = []ruleDef{
	{"about", `about(-us|-company)?/?$`},
	{"blog post", `blog/[^/]+/?$`},
	{"community", `(community|forum|discussion|groups)/?$`},
	{"contact", `contact(-us)?/?$`},
	{"faq", `(faqs?|frequently-asked-questions|help)/?$`},
	{"jobs", `(jobs|careers?|work-with-us|opportunities|join-us|open-roles)/?$`},
	{"press", `(press|press-room|press-kit)/?$`},
	{"pricing", `(pricing|plans|buy-now|pricing-and-plans)/?$`},
	{"reviews", `(testimonials|reviews|what-people-say)/?$`},
	{"services", `(services|what-we-do|our-services)/?$`},
	{"signup", `(signup|sign-up)/?$`},
	{"team", `(team|our-team|meet-the-team)/?$`},
	{"work", `(work|projects|portfolio)/?$`},
}

// Shared by title and anchor text.
var textRuleDefs = []ruleDef{
	{"about", `about(\s+)?(us|our\s+company)?`},
	{"contact", `^contact$|^contact us$`},
	{"faq", `faq|frequently\s+asked\s+questions`},
	{"home", `^home$`},
	{"login", `^(log\s*in|sign\s*in)$`},
	{"jobs", `^(jobs|careers|work\s*with\s*us|opportunities|join\s*us|open\s*roles)`},
	{"privacy", `privacy\s+policy`},
	{"media", `media\s+kit`},
	{"press", `press\s+room`},
	{"press", `press\s+release`},
	{"press", `press\s+kit`},
	{"press", `news\s+room`},
	{"register", `^(register|sign\s*up)$`},
	{"security", `security\s+policy`},
	{"security", `responsible\s+disclosure`},
	{"security", `bug\s+bounty`},
	{"security", `bug\s+bounties`},
	{"security", `security\s+reporting`},
	{"security", `security\s+disclosure`},
	{"terms", `terms\s+(of\s+service|and\s+conditions)`},
}

// Matched against the raw URL, before parsing.
var ignorePatternDefs = []string{
	`javascript:`,
	`print=1|printable=true`,
	`utm_source|utm_medium|utm_campaign`,
	`sid=\d+|session_id=`,
	`void\(0\)`,
	`#$`,
	`^#[^/]`,
	`/cdn-cgi/`,
	`/wp-content/cache/`,
	`/wp-admin/`,
	`google\.com/url\?`,
	`facebook\.com/sharer`,
	`twitter\.com/intent/tweet`,
}

var (
	ignorePatterns = compilePatterns(ignorePatternDefs)
	domainRules    = compileRules(domainRuleDefs)
	pathRules      = compileRules(pathRuleDefs)
	textRules      = compileRules(textRuleDefs)
)

// compilePattern makes every pattern case-insensitive. Matching uses
// MatchString, which is an unanchored search.
func compilePattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

func compilePatterns(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = compilePattern(expr)
	}
	return out
}

func compileRules(defs []ruleDef) []Rule {
	out := make([]Rule, len(defs))
	for i, d := range defs {
		out[i] = Rule{Category: d.category, Pattern: compilePattern(d.pattern)}
	}
	return out
}

// IgnorePatterns returns a copy of the ignore patterns in evaluation order.
func IgnorePatterns() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), ignorePatterns...)
}

// DomainRules returns a copy of the domain rules in evaluation order.
func DomainRules() []Rule { return append([]Rule(nil), domainRules...) }

// PathRules returns a copy of the path rules in evaluation order.
func PathRules() []Rule { return append([]Rule(nil), pathRules...) }

// TextRules returns a copy of the title/anchor text rules in evaluation order.
func TextRules() []Rule { return append([]Rule(nil), textRules...) }

func firstMatch(rules []Rule, s string) (string, bool) {
	for _, r := range rules {
		if r.Pattern.MatchString(s) {
			return r.Category, true
		}
	}
	return "", false
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
