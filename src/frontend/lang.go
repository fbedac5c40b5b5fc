package frontend

type reservedItem struct {
	val string
	typ itemType
}

// rw contains the set of all reserved Zinc keywords.
// The first dimension is the length of the word minus one.
// The second dimension is the slice of all words of that length.
// Indexing by length and searching should be faster than using a hash table.
var rw = [...][]reservedItem{
	// One-grams
	{},
	// Two-grams
	{
		{val: "if", typ: itemIf},
		{val: "fn", typ: itemFn},
	},
	// Three-grams
	{
		{val: "let", typ: itemLet},
		{val: "i32", typ: itemType_},
		{val: "str", typ: itemType_},
	},
	// Four-grams
	{
		{val: "else", typ: itemElse},
		{val: "loop", typ: itemLoop},
		{val: "true", typ: itemTrue},
		{val: "bool", typ: itemType_},
		{val: "void", typ: itemType_},
	},
	// Five-grams
	{
		{val: "while", typ: itemWhile},
		{val: "false", typ: itemFalse},
	},
	// Six-grams
	{
		{val: "return", typ: itemReturn},
	},
}

// keyword returns the itemType of s if it is a reserved Zinc keyword.
// On false the caller treats s as an ordinary identifier.
func keyword(s string) (itemType, bool) {
	if len(s) == 0 || len(s) > len(rw) {
		return itemIdentifier, false
	}
	for _, e := range rw[len(s)-1] {
		if e.val == s {
			return e.typ, true
		}
	}
	return itemIdentifier, false
}
