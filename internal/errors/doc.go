// Package errors provides coded, structured errors for listen.
//
// Every failure the listener layer can report has a stable code (e.g. "L001")
// that maps to a category, a short message and a longer explanation:
//
//	err := errors.New("L001").WithDetail("token 42 already released")
//	fmt.Println(err.Format())
//	// ERROR L001: Listener discarded after teardown
//	//
//	//   token 42 already released
//
// Invariant violations and host registration failures are fatal. The packages
// that raise them panic with an *Error so a recovering caller (for example a
// per-connection server loop) can still inspect the code:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if e, ok := errors.FromPanic(r); ok && e.Code == "L002" { ... }
//	    }
//	}()
package errors
