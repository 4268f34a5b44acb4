package cli

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlecorfec/progjpeg"

	_ "github.com/deepteams/webp"
)

// PromptLine displays a prompt and reads a full line of input from the
// user, trimmed of surrounding whitespace.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadImage decodes path into an image.Image. PNG, JPEG, GIF and WebP are
// all registered decoders by the time this runs (the webp package
// self-registers via blank import).
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// SaveImage writes a preview PNG of img to path; used for inspecting
// intermediate pipeline stages, not for the final stitch pattern (which is
// written through pkg/format instead).
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SavePreviewJPEG writes img to path as a progressive JPEG, so a partial
// download or a slow terminal viewer renders a coarse preview before the
// full-resolution scan arrives. Used only for the optional source-image
// preview the CLI can emit before conversion; the final stitch pattern is
// always written through pkg/format.
func SavePreviewJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return progjpeg.Encode(f, img, &progjpeg.Options{
		Quality:     90,
		Progressive: true,
		ScanScript:  progjpeg.DefaultColorScanScript(),
	})
}

// GetImageInfoImage returns a short human-readable summary of img.
func GetImageInfoImage(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	return fmt.Sprintf("%dx%d px", b.Dx(), b.Dy()), nil
}

// outputPathFor derives a sibling output path for inputPath with the given
// format extension, e.g. "design.png" + "dst" -> "design.dst".
func outputPathFor(inputPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), base+"."+ext)
}
