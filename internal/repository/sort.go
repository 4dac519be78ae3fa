package repository

// orderClause builds a safe ORDER BY from client-supplied sort params.
// Unknown fields fall back to created_at; anything but "asc" sorts
// descending. The id tiebreaker keeps pagination stable across rows
// that share the sort value.
func orderClause(columns map[string]string, sortBy, sortDirection string) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if sortDirection == "asc" {
		dir = "ASC"
	}
	return col + " " + dir + ", id " + dir
}
