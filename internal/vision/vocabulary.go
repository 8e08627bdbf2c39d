package vision

import "strings"

// clothingTerms is the fixed garment vocabulary used to filter object and
// label detections. Matching is substring in both directions, so "running
// shoe" matches "shoe" and "top" matches "tank top".
var clothingTerms = []string{
	"shirt", "t-shirt", "blouse", "top", "sweater", "hoodie", "cardigan",
	"pants", "trousers", "jeans", "shorts", "leggings",
	"skirt", "dress", "gown",
	"jacket", "blazer", "suit", "coat", "vest",
	"tie", "bow tie", "scarf", "belt",
	"shoe", "boot", "sneaker", "sandal", "heel", "footwear",
	"hat", "cap", "glove", "sock",
	"bag", "handbag", "backpack",
}

// genericClothingTerms extend the vocabulary for the label fallback only.
var genericClothingTerms = []string{
	"clothing", "apparel", "garment", "outfit", "fashion",
}

// brandNames is the fixed list scanned against detected text.
var brandNames = []string{
	"Nike", "Adidas", "Puma", "Reebok", "New Balance", "Under Armour",
	"Levi's", "Wrangler", "Gap", "Zara", "H&M", "Uniqlo", "Mango",
	"Ralph Lauren", "Tommy Hilfiger", "Calvin Klein", "Lacoste",
	"Gucci", "Prada", "Burberry", "Armani", "Versace", "Dior",
	"The North Face", "Patagonia", "Columbia", "Carhartt",
	"Supreme", "Champion", "Vans", "Converse",
}

// colorKeywords is scanned against label text as a last-resort color source.
var colorKeywords = []string{
	"black", "white", "gray", "grey", "navy", "blue", "red", "green",
	"yellow", "orange", "pink", "purple", "brown", "beige", "khaki",
	"cream", "burgundy", "maroon", "teal", "olive", "gold", "silver",
}

// isClothingTerm reports whether name matches the clothing vocabulary,
// substring in either direction.
func isClothingTerm(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, term := range clothingTerms {
		if strings.Contains(n, term) || strings.Contains(term, n) {
			return true
		}
	}
	return false
}

// isClothingLabel additionally accepts generic clothing terms.
func isClothingLabel(name string) bool {
	if isClothingTerm(name) {
		return true
	}
	n := strings.ToLower(strings.TrimSpace(name))
	for _, term := range genericClothingTerms {
		if strings.Contains(n, term) {
			return true
		}
	}
	return false
}
