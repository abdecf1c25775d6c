package main

import (
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"

	"Upstat/internal/pkg/fileutil"
	"Upstat/internal/repository"
	"Upstat/internal/service"

	"github.com/goccy/go-json"
)

const usage = "usage: faceexport <roster.json> [face.json]"

// 从名册导出 {uid, Face} 列表，默认写到名册同目录的 face.json
func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	src := os.Args[1]
	dst := filepath.Join(filepath.Dir(src), "face.json")
	if len(os.Args) == 3 {
		dst = os.Args[2]
	}

	if err := run(src, dst); err != nil {
		log.Error("face export failed", "src", src, "err", err)
		os.Exit(1)
	}
	log.Info("face export finished", "dst", dst)
}

func run(src, dst string) error {
	entries, err := repository.ReadRosterFile(src)
	if err != nil {
		return err
	}
	faces, err := service.ExportFaces(entries)
	if err != nil {
		return err
	}
	data, err := json.Marshal(faces)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(dst, data, 0o644)
}
