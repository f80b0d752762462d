package ast

import "github.com/solomonhawk/tbl/internal/source"

// spanMap renders a span as the {"start": uint, "end": uint} byte-offset
// envelope used throughout the JSON schema.
func spanMap(s source.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": s.Start.Offset,
		"end":   s.End.Offset,
	}
}

func spanned(value interface{}, s source.Span) map[string]interface{} {
	return map[string]interface{}{
		"value": value,
		"span":  spanMap(s),
	}
}

// ProgramToMap renders a Program as the JSON-ready map described by the
// external AST schema.
func ProgramToMap(p Program) map[string]interface{} {
	tables := make([]map[string]interface{}, len(p.Tables))
	for i, tbl := range p.Tables {
		tables[i] = spanned(tableToMap(tbl), tbl.Span)
	}
	return map[string]interface{}{"tables": tables}
}

func tableToMap(t Table) map[string]interface{} {
	rules := make([]map[string]interface{}, len(t.Rules))
	for i, r := range t.Rules {
		rules[i] = spanned(ruleToMap(r), r.Span)
	}
	return map[string]interface{}{
		"metadata": map[string]interface{}{
			"id":     t.Metadata.ID,
			"export": t.Metadata.Exported,
		},
		"rules": rules,
	}
}

func ruleToMap(r Rule) map[string]interface{} {
	content := make([]map[string]interface{}, len(r.Content))
	for i, seg := range r.Content {
		content[i] = segmentToMap(seg)
	}
	return map[string]interface{}{
		"weight":  r.Weight,
		"content": content,
	}
}

func segmentToMap(s Segment) map[string]interface{} {
	if s.Literal != nil {
		return map[string]interface{}{"literal": *s.Literal}
	}
	return map[string]interface{}{"expression": expressionToMap(*s.Expression)}
}

func expressionToMap(e Expression) map[string]interface{} {
	if e.DiceRoll != nil {
		m := map[string]interface{}{"sides": e.DiceRoll.Sides}
		if e.DiceRoll.Count != 1 {
			m["count"] = e.DiceRoll.Count
		}
		return map[string]interface{}{"dice_roll": m}
	}

	modifiers := make([]string, len(e.TableReference.Modifiers))
	for i, m := range e.TableReference.Modifiers {
		modifiers[i] = m.String()
	}
	return map[string]interface{}{
		"table_reference": map[string]interface{}{
			"table_id":  e.TableReference.TargetID,
			"modifiers": modifiers,
		},
	}
}
