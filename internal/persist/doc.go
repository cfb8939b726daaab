// Package persist saves and restores arbitrary Go values to files.
//
// Objects are encoded as CBOR (RFC 8949), which round-trips structs, maps,
// slices and scalars without a schema and can be decoded back into a
// generic value when the original type is not at hand. Files written here
// conventionally carry the ".pkl" extension so the data catalog picks them up
// and dispatches them to LoadObject.
//
// Example usage:
//
//	path, err := persist.SaveObject(model, paths.ModelsDir, "model.pkl", true)
//	// path == ".../models/model_2024_01_31_09_15_00.pkl"
//
//	var restored Model
//	err = persist.DecodeObject(path, &restored)
package persist
