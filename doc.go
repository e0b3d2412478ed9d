// Package profanity detects profanity in text, including text disguised with
// leetspeak, spacing tricks, repeated letters or embedded punctuation.
//
// Scoring is delegated to an Oracle. The bundled oracle is an ONNX Runtime
// session (package inference) running a bag-of-words classifier.
//
// # Quick Start
//
//	checker, err := profanity.New("profanity.onnx", "profanity.vocab")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer checker.Close()
//
//	profane, err := checker.IsProfane(ctx, "You stupid 5h1t")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Profane: %v\n", profane)
//
// # Normalization and Bypass
//
// IsProfane and ProfanityProbability run the text through the configured
// normalizers (package normalize) and score it once. The Bypass variants
// instead expand the raw text into many candidates (package variant) and
// score each, so profanity hidden inside a longer string is still found.
// Bypass checking favors recall: an innocent word can contain a profane
// substring.
//
// # Thread Safety
//
// Checker is not safe for concurrent use. It owns a single oracle session;
// create one Checker per goroutine for parallel checking.
package profanity
