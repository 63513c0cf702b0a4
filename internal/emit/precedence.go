package emit

// operatorPrecedence mirrors Swift's standard library precedencegroups
// (higher binds tighter), collapsed to the subset §4 actually produces:
// assignment and ternary are handled structurally (ExprAssignment,
// ExprTernary are their own node kinds, never ExprBinary), so the table
// only needs to order BinaryExpression's possible Operator strings.
var operatorPrecedence = map[string]int{
	"??": 1,

	"||": 2,

	"&&": 3,

	"<":   4,
	"<=":  4,
	">":   4,
	">=":  4,
	"==":  4,
	"!=":  4,
	"===": 4,
	"!==": 4,
	"~=":  4,

	"..<": 5,
	"...": 5,

	"+":  6,
	"-":  6,
	"&+": 6,
	"&-": 6,
	"|":  6,
	"^":  6,

	"*":  7,
	"/":  7,
	"%":  7,
	"&*": 7,
	"&":  7,

	"<<": 8,
	">>": 8,
}

// rightAssoc has no entries: none of the operators §4's grammar produces
// (arithmetic, comparison, logical, range, bitwise) are right-associative
// in Swift — only the assignment/ternary operators are, and those are
// modeled as their own ExprKind rather than ExprBinary.
var rightAssoc = map[string]bool{}

func getPrecedence(op string) int {
	if prec, ok := operatorPrecedence[op]; ok {
		return prec
	}
	return 9
}
