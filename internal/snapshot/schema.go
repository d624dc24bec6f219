package snapshot

// UpdateRequestSchema replaces the request half of the schema definition.
// The response half keeps its last committed value: the current definition
// is read inside the transaction, after the reload, so a concurrent
// response-schema update is never clobbered.
func (s *Settings) UpdateRequestSchema(schema map[string]any) error {
	return s.Transaction(func(snap *ProjectSnapshot) error {
		response := map[string]any{}
		if snap.SchemaDefinition != nil {
			response = snap.SchemaDefinition.ResponseSchema
		}
		snap.SchemaDefinition = &UserAPISchemaDefinition{
			RequestSchema:  schema,
			ResponseSchema: response,
		}
		return nil
	})
}

// UpdateResponseSchema replaces the response half of the schema definition,
// preserving the request half the same way.
func (s *Settings) UpdateResponseSchema(schema map[string]any) error {
	return s.Transaction(func(snap *ProjectSnapshot) error {
		request := map[string]any{}
		if snap.SchemaDefinition != nil {
			request = snap.SchemaDefinition.RequestSchema
		}
		snap.SchemaDefinition = &UserAPISchemaDefinition{
			RequestSchema:  request,
			ResponseSchema: schema,
		}
		return nil
	})
}

// RequestSchema returns the stored request schema, or nil when no schema
// definition has been set.
func (s *Settings) RequestSchema() map[string]any {
	if s.snap.SchemaDefinition == nil {
		return nil
	}
	return s.snap.SchemaDefinition.RequestSchema
}

// ResponseSchema returns the stored response schema, or nil when no schema
// definition has been set.
func (s *Settings) ResponseSchema() map[string]any {
	if s.snap.SchemaDefinition == nil {
		return nil
	}
	return s.snap.SchemaDefinition.ResponseSchema
}
