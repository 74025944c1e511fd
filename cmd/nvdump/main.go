// Command nvdump inspects an nvkv device image: it opens the image,
// initializes the store read-only-style (Begin never rewrites an already
// claimed region) and prints every stored record.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nvkv/nvkv"
)

func main() {
	var (
		image = flag.String("image", "state.img", "path of the device image")
		size  = flag.Int("size", 1024, "device size in bytes")
		begin = flag.Int("begin", 0, "first address of the store window")
		end   = flag.Int("end", 0, "one past the last address of the store window (0 = device end)")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := dump(*image, *size, *begin, *end, logger); err != nil {
		logger.Sugar().Errorw("dump failed", "image", *image, "err", err)
		os.Exit(1)
	}
}

func dump(image string, size, begin, end int, logger *zap.Logger) error {
	dev, err := nvkv.OpenFileDevice(image, size)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	ps, err := nvkv.Open(dev, &nvkv.Config{BeginIndex: begin, EndIndex: end}, logger)
	if err != nil {
		return err
	}
	count, err := ps.Begin()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d record(s)\n", image, count)

	it := ps.Iterator()
	for it.Next() {
		v := it.Value()
		fmt.Printf("  %-3s @%-5d %3dB  %s\n",
			v.ID(), v.Address(), v.Size(), hex.EncodeToString(v.Bytes()))
	}
	return it.Err()
}
