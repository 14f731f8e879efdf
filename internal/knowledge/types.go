package knowledge

// Entry is one knowledge base document.
type Entry struct {
	Text        string
	ProductName string
	Category    string
}

// AnswerInput carries a knowledge question. Category and ProductName narrow
// the search when the caller already knows them; otherwise both are inferred
// from the question. CatalogNames is the product catalog used for inference.
type AnswerInput struct {
	Question     string
	Category     string
	ProductName  string
	CatalogNames []string
}

// Result is one retrieved document.
type Result struct {
	Content     string  `json:"content"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}

// Answer is a shaped knowledge reply.
type Answer struct {
	Message     string   `json:"message"`
	Results     []Result `json:"results"`
	Category    string   `json:"category,omitempty"`
	ProductName string   `json:"product_name,omitempty"`
}
