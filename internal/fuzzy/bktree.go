package fuzzy

import "jejemonly/internal/editdist"

// BKTree indexes words in a metric space keyed by edit distance. The
// suggestion command builds one over the lexicon's slang keys and
// canonical words; the normalization pipeline itself does not use it,
// because its tie-breaking depends on linear candidate order.
type BKTree struct {
	root *bkNode
	size int
}

type bkNode struct {
	word     string
	children map[int]*bkNode
}

// NewBKTree creates an empty tree.
func NewBKTree() *BKTree {
	return &BKTree{}
}

// Insert adds a word to the tree. Empty words and duplicates are ignored.
func (t *BKTree) Insert(word string) {
	if word == "" {
		return
	}

	if t.root == nil {
		t.root = &bkNode{word: word, children: make(map[int]*bkNode)}
		t.size++
		return
	}

	current := t.root
	for {
		dist := editdist.Distance(word, current.word)
		if dist == 0 {
			return
		}

		child, exists := current.children[dist]
		if !exists {
			current.children[dist] = &bkNode{word: word, children: make(map[int]*bkNode)}
			t.size++
			return
		}
		current = child
	}
}

// InsertAll adds multiple words.
func (t *BKTree) InsertAll(words []string) {
	for _, word := range words {
		t.Insert(word)
	}
}

// Suggestion is a word found within the requested edit distance.
type Suggestion struct {
	Word     string `json:"word"`
	Distance int    `json:"distance"`
}

// Search finds all indexed words within maxDistance of the query.
func (t *BKTree) Search(query string, maxDistance int) []Suggestion {
	if t.root == nil || query == "" {
		return nil
	}

	var results []Suggestion
	t.searchNode(t.root, query, maxDistance, &results)
	return results
}

func (t *BKTree) searchNode(node *bkNode, query string, maxDistance int, results *[]Suggestion) {
	dist := editdist.Distance(query, node.word)

	if dist <= maxDistance {
		*results = append(*results, Suggestion{Word: node.word, Distance: dist})
	}

	// Triangle inequality prunes children outside [dist-max, dist+max].
	for childDist, child := range node.children {
		if childDist >= dist-maxDistance && childDist <= dist+maxDistance {
			t.searchNode(child, query, maxDistance, results)
		}
	}
}

// Size returns the number of indexed words.
func (t *BKTree) Size() int {
	return t.size
}

// Contains checks whether a word is indexed.
func (t *BKTree) Contains(word string) bool {
	results := t.Search(word, 0)
	return len(results) > 0 && results[0].Distance == 0
}
