package complete

// Category groups catalog patterns for context-sensitive ranking.
type Category string

const (
	CategoryBasic          Category = "Basic"
	CategoryFiltering      Category = "Filtering"
	CategoryTransformation Category = "Transformation"
	CategoryAggregation    Category = "Aggregation"
	CategorySorting        Category = "Sorting"
	CategoryGrouping       Category = "Grouping"
	CategoryConstruction   Category = "Construction"
	CategoryComparison     Category = "Comparison"
	CategoryValues         Category = "Values"
)

// Pattern is one static catalog snippet. The catalog is fixed at process
// start; slice order doubles as the rank tiebreaker.
type Pattern struct {
	Name        string
	Snippet     string
	Description string
	Category    Category
}

// Catalog returns the built-in pattern catalog.
func Catalog() []Pattern {
	return catalog
}

var catalog = []Pattern{
	{"Identity", ".", "Pass the input through unchanged", CategoryBasic},
	{"Field access", ".field", "Read a single field", CategoryBasic},
	{"Nested field", ".parent.child", "Read a field of a field", CategoryBasic},
	{"Iterate array", ".[]", "Emit every element of an array", CategoryBasic},
	{"First element", ".[0]", "Read the first element of an array", CategoryBasic},
	{"Filter by condition", `map(select(.field == "value"))`, "Keep elements matching a condition", CategoryFiltering},
	{"Select matching", `select(.field == "value")`, "Pass the input through only when it matches", CategoryFiltering},
	{"Has key", `select(has("key"))`, "Keep objects that define a key", CategoryFiltering},
	{"Map values", "map(.field)", "Extract one field from every element", CategoryTransformation},
	{"Pick fields", "map({id, name})", "Shrink every element to a few fields", CategoryTransformation},
	{"Flatten", "flatten", "Collapse nested arrays one level", CategoryTransformation},
	{"Unique", "unique", "Drop duplicate elements", CategoryTransformation},
	{"Length", "length", "Count elements or string length", CategoryAggregation},
	{"Sum", "add", "Add all elements together", CategoryAggregation},
	{"Max by field", "max_by(.field)", "Element with the largest field value", CategoryAggregation},
	{"Sort array", "sort_by(.field)", "Order elements by a field", CategorySorting},
	{"Reverse", "reverse", "Invert element order", CategorySorting},
	{"Group by", "group_by(.field)", "Bucket elements by a field value", CategoryGrouping},
	{"Count by group", "group_by(.field) | map({key: .[0].field, count: length})", "Tally elements per field value", CategoryGrouping},
	{"Build object", "{name: .field}", "Construct a fresh object", CategoryConstruction},
	{"Merge objects", `. + {key: "value"}`, "Overlay extra keys on an object", CategoryConstruction},
	{"Equal", `.field == "value"`, "Test a field for equality", CategoryComparison},
	{"Compare numbers", ".field > 10", "Test a field numerically", CategoryComparison},
	{"Keys", "keys", "List an object's keys", CategoryValues},
	{"Type of value", "type", "Name the type of the input", CategoryValues},
	{"Literal string", `"value"`, "A quoted string literal", CategoryValues},
}
