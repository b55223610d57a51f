package types

// View is the JSON-ready interior of a mounted application
type View map[string]interface{}
