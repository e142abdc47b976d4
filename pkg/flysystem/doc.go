// Package flysystem is a local-filesystem adapter: a uniform API over
// native file operations confined to one root directory.
//
// The adapter itself lives in the local subpackage:
//
//	adapter, err := local.New("/var/data",
//		local.WithLinkHandling(flysystem.LinksSkip),
//		local.WithLogger(flysystem.DefaultLogger()),
//	)
//	if err != nil {
//		return err // the root is missing, not a directory or not writable
//	}
//	meta, err := adapter.Write("reports/today.txt", data, flysystem.Config{"visibility": "private"})
//
// Every operation returns (value, error). Errors are *core.Error values
// whose Kind tells routine failures (core.KindOperationFailed) apart from
// policy violations (core.KindNotSupported, core.KindUnreadableFile).
//
// This package holds the logger constructors and aliases for the shared
// types defined in core.
package flysystem
