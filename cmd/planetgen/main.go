// Command planetgen renders planets from seeds without running the server.
//
//	planetgen profile [-surface icy] SEED
//	planetgen render [-size 256] [-lite] [-surface gas] [-preview 64] [-format png|raw] [-o FILE] SEED
//	planetgen batch [-from 0] [-count 16] [-size 256] [-workers 4] -dir DIR
//	planetgen token [-subject ops] [-role admin] [-ttl $JWT_EXPIRATION_HOURS]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"

	"planetgen/internal/auth"
	"planetgen/internal/planet"
	"planetgen/internal/shared/config"
	"planetgen/internal/shared/logger"
	"planetgen/internal/shared/utils"
	"planetgen/internal/texture"

	"github.com/joho/godotenv"
)

var errUsage = errors.New("usage: planetgen <profile|render|batch|token> [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "planetgen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	// Commands read the same .env as the server; a missing file is fine.
	_ = godotenv.Load()

	log := logger.New(stderr, config.LoggingConfig{Level: utils.GetEnv("LOG_LEVEL", "warn")})

	switch args[0] {
	case "profile":
		return runProfile(args[1:], stdout, stderr)
	case "render":
		return runRender(args[1:], stdout, stderr)
	case "batch":
		return runBatch(ctx, args[1:], stderr, log)
	case "token":
		return runToken(args[1:], stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// seedArg parses the single positional seed argument.
func seedArg(fs *flag.FlagSet) (int32, error) {
	if fs.NArg() != 1 {
		return 0, fmt.Errorf("%s: expected exactly one SEED argument", fs.Name())
	}
	return planet.ParseSeed(fs.Arg(0))
}

func surfaceFlag(s string) (planet.SurfaceType, error) {
	if s == "" {
		return "", nil
	}
	return planet.ParseSurfaceType(s)
}

func runProfile(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("profile", stderr)
	surface := fs.String("surface", "", "override the derived surface type (rocky, gas, icy)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seed, err := seedArg(fs)
	if err != nil {
		return err
	}
	st, err := surfaceFlag(*surface)
	if err != nil {
		return err
	}

	p, err := planet.GenerateWith(seed, planet.Options{Surface: st, Size: 1})
	if err != nil {
		return err
	}
	p.Texture = nil

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func runRender(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("render", stderr)
	surface := fs.String("surface", "", "override the derived surface type (rocky, gas, icy)")
	size := fs.Int("size", 0, "texture side in pixels (default 256, or 64 with -lite)")
	lite := fs.Bool("lite", false, "render the low-resolution variant")
	preview := fs.Int("preview", 0, "downscale the result to this side length")
	format := fs.String("format", "png", "output format: png or raw")
	out := fs.String("o", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seed, err := seedArg(fs)
	if err != nil {
		return err
	}
	st, err := surfaceFlag(*surface)
	if err != nil {
		return err
	}
	if *format != "png" && *format != "raw" {
		return fmt.Errorf("render: unknown format %q", *format)
	}

	p, err := planet.GenerateWith(seed, planet.Options{Surface: st, Size: *size, Lite: *lite})
	if err != nil {
		return err
	}

	buf := p.Texture
	if *preview > 0 {
		if buf, err = texture.Preview(buf, *preview); err != nil {
			return err
		}
	}

	write := texture.EncodePNG
	if *format == "raw" {
		write = writeRaw
	}

	if *out == "-" {
		return write(stdout, buf)
	}
	return writeFile(*out, buf, write)
}

func writeRaw(w io.Writer, buf *texture.Buffer) error {
	_, err := w.Write(buf.Pix)
	return err
}

func runBatch(ctx context.Context, args []string, stderr io.Writer, log *slog.Logger) error {
	fs := newFlagSet("batch", stderr)
	from := fs.Int("from", 0, "first seed")
	count := fs.Int("count", 16, "number of consecutive seeds")
	size := fs.Int("size", 0, "texture side in pixels (default 256)")
	workers := fs.Int("workers", 4, "concurrent generators")
	dir := fs.String("dir", "", "output directory for <seed>.png files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return errors.New("batch: -dir is required")
	}
	if *count <= 0 {
		return errors.New("batch: -count must be positive")
	}

	first, last := int64(*from), int64(*from)+int64(*count)-1
	if first < math.MinInt32 || last > math.MaxInt32 {
		return fmt.Errorf("batch: seeds %d..%d: %w", first, last, planet.ErrSeedOutOfRange)
	}

	seeds := make([]int32, *count)
	for i := range seeds {
		seeds[i] = int32(first + int64(i))
	}

	svc := planet.NewService(nil, nil, planet.ServiceConfig{Workers: *workers, MaxBatch: *count}, log)
	planets, err := svc.GenerateBatch(ctx, seeds, planet.Options{Size: *size})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}
	for _, p := range planets {
		if err := writeFile(filepath.Join(*dir, fmt.Sprintf("%d.png", p.Seed)), p.Texture, texture.EncodePNG); err != nil {
			return err
		}
		log.Info("Planet written", "seed", p.Seed, "surface_type", p.Profile.SurfaceType)
	}
	return nil
}

// writeFile encodes buf into path and returns the close error as well.
func writeFile(path string, buf *texture.Buffer, encode func(io.Writer, *texture.Buffer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runToken(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("token", stderr)
	subject := fs.String("subject", "ops", "token subject")
	role := fs.String("role", auth.RoleAdmin, "token role (admin or reader)")
	authCfg := config.LoadAuthConfig()
	ttl := fs.Duration("ttl", authCfg.TokenExpiration, "token lifetime (default from JWT_EXPIRATION_HOURS)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role != auth.RoleAdmin && *role != auth.RoleReader {
		return fmt.Errorf("token: unknown role %q", *role)
	}

	token, err := auth.GenerateJWT(*subject, *role, authCfg.JWTSecret, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}
