// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

// stopwords is the closed set dropped by the regex strategy.
var stopwords = wordSet(
	"the", "and", "is", "of", "to", "in", "a", "on", "for", "with", "as", "by",
	"be", "that", "this", "it", "at", "from", "or", "are", "was", "we", "you",
	"they", "he", "she", "his", "her", "their", "our", "my", "an",
)

// extendedStopwords is the larger English function-word list used by the
// lemma strategy. It is a superset of stopwords.
var extendedStopwords = func() map[string]bool {
	m := wordSet(
		"about", "above", "after", "again", "against", "all", "almost", "also",
		"although", "always", "am", "among", "amongst", "amount", "another",
		"any", "anyhow", "anyone", "anything", "anyway", "anywhere", "around",
		"back", "because", "become", "becomes", "been", "before", "being",
		"below", "beside", "besides", "between", "beyond", "both", "but", "can",
		"could", "did", "do", "does", "doing", "done", "down", "due", "during",
		"each", "either", "else", "elsewhere", "enough", "even", "ever", "every",
		"everyone", "everything", "everywhere", "few", "further", "had", "has",
		"have", "having", "hence", "here", "hers", "herself", "him", "himself",
		"how", "however", "i", "if", "into", "its", "itself", "just", "least",
		"less", "made", "many", "may", "me", "might", "mine", "more", "moreover",
		"most", "mostly", "much", "must", "myself", "neither", "never",
		"nevertheless", "no", "nobody", "none", "nor", "not", "nothing", "now",
		"nowhere", "off", "often", "once", "only", "onto", "other", "others",
		"otherwise", "ours", "ourselves", "out", "over", "own", "per", "perhaps",
		"please", "put", "quite", "rather", "really", "same", "say", "see",
		"seem", "seemed", "seems", "several", "should", "since", "so", "some",
		"someone", "something", "sometimes", "somewhere", "still", "such",
		"than", "theirs", "them", "themselves", "then", "there", "therefore",
		"these", "those", "though", "through", "throughout", "thus", "together",
		"too", "toward", "towards", "under", "until", "up", "upon", "us", "very",
		"via", "well", "were", "what", "whatever", "when", "whenever", "where",
		"whether", "which", "while", "who", "whoever", "whole", "whom", "whose",
		"why", "will", "within", "without", "would", "yet", "your", "yours",
		"yourself", "yourselves",
	)
	for w := range stopwords {
		m[w] = true
	}
	return m
}()

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
