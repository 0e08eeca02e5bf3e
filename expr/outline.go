package expr

import "strings"

// Outline renders the tree one node per line, children indented by two
// spaces under their operator.
func Outline(e Expr) string {
	var sb strings.Builder
	writeOutline(&sb, e, 0)
	return sb.String()
}

func writeOutline(sb *strings.Builder, e Expr, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n := e.(type) {
	case *BinaryExpr:
		sb.WriteString(n.Op.String())
		sb.WriteByte('\n')
		writeOutline(sb, n.Left, depth+1)
		writeOutline(sb, n.Right, depth+1)
	case nil:
		sb.WriteString("<nil>\n")
	default:
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
}
