// internal/textfilter/wordlist.go
package textfilter

// bannedWords is the canonical wordlist. Matching is full-token only, so
// entries are whole words; obfuscated variants are caught by normalization,
// not by listing them here.
var bannedWords = []string{
	// Turkish
	"amk",
	"aq",
	"amcik",
	"orospu",
	"pic",
	"sik",
	"sikik",
	"sikerim",
	"yarrak",
	"yarak",
	"got",
	"ibne",
	"pezevenk",
	"kahpe",
	"gavat",
	"yavsak",
	"surtuk",
	"oc",
	"mal",
	"gerizekali",

	// English
	"fuck",
	"fucker",
	"fucking",
	"motherfucker",
	"shit",
	"bullshit",
	"bitch",
	"asshole",
	"bastard",
	"cunt",
	"dick",
	"dickhead",
	"pussy",
	"whore",
	"slut",
	"cock",
	"prick",
	"twat",
	"wanker",
	"nigger",
	"nigga",
	"faggot",
	"retard",
}
