// Package pmpsdb synchronizes PMPS database export files with the FTP
// servers running on Beckhoff PLCs.
//
// This package provides:
//   - Per-operation FTP sessions with guaranteed teardown
//   - The PLCs' default credential chain with anonymous fallback
//   - Directory listings parsed into structured file records
//   - Binary upload and download of database export files
//   - Structural comparison of local exports against PLC copies
//
// Every operation opens its own session, scopes it to the pmps
// directory (created if missing), and closes it before returning.
// Sessions are never pooled or reused, so concurrent operations against
// different PLCs are independent. Data connections are always active
// mode: the PLCs do not reliably support passive mode.
//
// # Basic Usage
//
// Create a client and inspect a PLC:
//
//	client := pmpsdb.New(pmpsdb.Config{})
//
//	files, err := client.ListFileInfo(ctx, "plc-kfe-motion", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s uploaded at %s (%d bytes)\n", f.Filename, f.CreateTime, f.Size)
//	}
//
// # Deploying Exports
//
// Upload a database export and verify it landed intact:
//
//	result, err := client.SyncFile(ctx, "plc-kfe-motion", "exports/kfe-motion.json", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Uploaded {
//		fmt.Println("already up to date")
//	}
//
// # Error Handling
//
// Failures stay inspectable: errors.Is(err, pmpsdb.ErrUnreachable) for
// hosts that never answered, errors.Is(err, pmpsdb.ErrAuthExhausted)
// when no default credential was accepted, and errors.As against
// *pmpsdb.ProtocolError, *pmpsdb.ParseError, and *pmpsdb.DecodeError
// for rejected commands, malformed listings or exports, and non-ASCII
// content. Nothing is retried on the caller's behalf.
package pmpsdb
