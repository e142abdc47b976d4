package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/SilverFire/flysystem/pkg/flysystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/local"
)

// Example walking through the local adapter
func main() {
	root, err := os.MkdirTemp("", "flysystem-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(root)

	adapter, err := local.New(root, local.WithLinkHandling(flysystem.LinksSkip))
	if err != nil {
		log.Fatalf("New failed: %v", err)
	}

	fmt.Println("=== Writing ===")

	// Parents are created on demand
	meta, err := adapter.Write("project/config.yaml", []byte("version: 1.0\nname: my-app"), nil)
	if err != nil {
		log.Fatalf("Write failed: %v", err)
	}
	fmt.Printf("✓ wrote %s (%d bytes)\n", meta.Path, *meta.Size)

	_, err = adapter.WriteStream("project/secrets.env", strings.NewReader("TOKEN=abc"),
		flysystem.Config{"visibility": "private", "directory_visibility": "private"})
	if err != nil {
		log.Fatalf("WriteStream failed: %v", err)
	}
	fmt.Println("✓ streamed project/secrets.env (private)")

	if err := adapter.Copy("project/config.yaml", "project/backup/config.yaml"); err != nil {
		log.Fatalf("Copy failed: %v", err)
	}
	fmt.Println("✓ copied config.yaml")

	fmt.Println("\n=== Reading ===")

	stream, err := adapter.ReadStream("project/config.yaml")
	if err != nil {
		log.Fatalf("ReadStream failed: %v", err)
	}
	if _, err := io.Copy(os.Stdout, stream.Stream); err != nil {
		log.Fatalf("reading stream: %v", err)
	}
	stream.Stream.Close()
	fmt.Println()

	mime, err := adapter.GetMimetype("project/config.yaml")
	if err != nil {
		log.Fatalf("GetMimetype failed: %v", err)
	}
	fmt.Printf("mimetype: %s\n", mime.Mimetype)

	fmt.Println("\n=== Listing ===")

	list, err := adapter.ListContents("project", true)
	if err != nil {
		log.Fatalf("ListContents failed: %v", err)
	}
	for i, entry := range list {
		fmt.Printf("%d. %s: %s\n", i+1, entry.Type, entry.Path)
	}

	fmt.Println("\n=== Errors ===")

	// Routine failures are values, never panics
	_, err = adapter.Read("project/missing.txt")
	fmt.Printf("missing file is an operation failure: %v\n", core.IsOperationFailed(err))

	_, err = adapter.Read("../outside.txt")
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		fmt.Printf("escaping the root fails %s on %q\n", coreErr.Op, coreErr.Path)
	}

	if err := adapter.DeleteDir("project"); err != nil {
		log.Fatalf("DeleteDir failed: %v", err)
	}
	fmt.Printf("project removed: %v\n", !adapter.Has("project"))
}
