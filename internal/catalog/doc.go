// Package catalog indexes the data files of a project laid out as
// root/data/{raw,processed,interim,external} and loads them by basename.
//
// A Catalog holds an in-memory table of FileRecords that is rebuilt wholesale
// by Scan. Search and Summarize scan implicitly when the table is empty;
// Resolve and Load never do.
//
// Lookup outcomes are explicit. Resolve returns a domain.Resolution whose
// Status distinguishes found, not found and ambiguous; Load turns the last two
// into a *LoadError wrapping ErrNotFound or ErrAmbiguous.
//
//	cat, err := catalog.Open(".")
//	if err != nil {
//	    return err
//	}
//	frame, err := cat.LoadFrame("sales_data", loaders.Options{})
//
// A Catalog is not safe for concurrent use.
package catalog
