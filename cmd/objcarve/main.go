// Command objcarve removes NQ (normal-quality) mesh geometry that is
// already covered by one or more HQ (high-quality) asset folders, emitting
// the de-duplicated result into an output folder.
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/sanox-oy/obj-overlap-cleaner/pipeline"
)

// folderList accumulates repeated --hq-asset-folders occurrences into an
// ordered slice.
type folderList []string

func (f *folderList) String() string {
	return strings.Join(*f, ",")
}

func (f *folderList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	var hqFolders folderList
	flag.Var(&hqFolders, "hq-asset-folders", "Path to an HQ asset folder; repeat the flag for multiple folders.")
	normalAssetFolder := flag.String("normal-asset-folder", "", "Path to the NQ asset folder.")

	cleanup := grail.Init()
	defer cleanup()

	if flag.NArg() != 1 {
		log.Fatalf("usage: objcarve --normal-asset-folder=<dir> --hq-asset-folders=<dir> [--hq-asset-folders=<dir> ...] <out-folder>")
	}
	if *normalAssetFolder == "" {
		log.Fatalf("--normal-asset-folder is required")
	}
	if len(hqFolders) == 0 {
		log.Fatalf("at least one --hq-asset-folders is required")
	}
	outFolder := flag.Arg(0)

	start := time.Now()
	driver := pipeline.NewDriver(*normalAssetFolder, hqFolders, outFolder)
	if err := driver.Run(); err != nil {
		log.Fatalf("objcarve: %v", err)
	}
	log.Printf("done in %s", time.Since(start))
}
