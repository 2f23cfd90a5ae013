// internal/handlers/extract-label/schema.go
package extractlabel

// ExtractionSchema returns the JSON Schema sent to the vision provider as a
// structured-output constraint: exactly eight typed fields, all required,
// null where the label gives nothing.
func ExtractionSchema() map[string]interface{} {
	return buildSchema(false)
}

// LocalValidationSchema is the variant used to validate the model's output
// before it is decoded. It tolerates extra properties: the proxy overwrites
// the image-reference fields regardless of what the model emits.
func LocalValidationSchema() map[string]interface{} {
	return buildSchema(true)
}

func buildSchema(allowAdditional bool) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"nome":   map[string]interface{}{"type": "string", "description": "Nome do vinho (rótulo)."},
			"pais":   map[string]interface{}{"type": []string{"string", "null"}, "description": "País de origem."},
			"regiao": map[string]interface{}{"type": []string{"string", "null"}, "description": "Região / denominação."},
			"uvas":   map[string]interface{}{"type": []string{"string", "null"}, "description": "Uvas (se constar)."},
			"abv":    map[string]interface{}{"type": []string{"string", "null"}, "description": "Teor alcoólico (ex.: 13,5%)."},
			"safra":  map[string]interface{}{"type": []string{"string", "null"}, "description": "Ano (ou 'NV')."},
			"forca":  map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 5},
			"poesia": map[string]interface{}{"type": "string", "description": "Descrição poética curta (1–2 frases)."},
		},
		"required":             []string{"nome", "pais", "regiao", "uvas", "abv", "safra", "forca", "poesia"},
		"additionalProperties": allowAdditional,
	}
}
