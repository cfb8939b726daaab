// Package loaders turns data files into in-memory values.
//
// A Registry maps lowercase file extensions to Loader functions. The default
// registry covers the formats the data catalog accepts:
//
//	.csv            delimited text            -> *domain.Frame
//	.xlsx, .xls     spreadsheet (excelize)    -> *domain.Frame
//	.json           records / split / columns -> *domain.Frame
//	.pkl            serialized object (CBOR) -> any
//	.parquet        columnar table            -> *domain.Frame
//	.h5             HDF5 dataset, needs Key   -> *domain.Frame
//
// HDF5 support links against the C library and is only compiled with the
// "hdf5" build tag; without it the loader still validates Options.Key and then
// reports ErrHDF5Unavailable.
//
// Options are passed to the loader unchanged. Fields that a format does not
// understand are ignored; Options.Extra carries any further format-specific
// switches.
package loaders
