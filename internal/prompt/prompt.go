// Package prompt renders the instruction prompts sent to the language model.
// Each roast mode has its own template; the user's copywriting text is
// embedded verbatim, exactly once, wrapped in quotes. Building a prompt is
// deterministic and has no side effects.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/navrex0/roastbot/internal/domain"
)

// The mode prompts brief the model as an experienced Indonesian stand-up
// comedian roasting a friend's copywriting. Both demand informal register
// and plaintext output; the solution mode additionally asks for advice.
const (
	spicyTemplate = `Lo adalah seorang stand up komedi dengan pengalaman lebih dari 10 tahun. Spesialis lo adalah di roasting. Lo paling bisa kalo soal roasting. Ga cuma itu, lo juga ahli dalam copywriting sembari lo jadi stand up komedian. Nah sekarang lo ditugasin buat roasting-in hasil copywriting orang.

Lo ga perlu mikirin solusi, lo cukup kasih roasting-an sebagai hiburan. Anggep aja lo sekarang lagi di tongkrongan terus ada temen lo nunjukkin copywriting-nya!

Lo ga usah intro, langsung kasih roasting pake bahasa sehari-hari yang gaul & friendly kayak lo gue gitu, ga usah formal.

Nih teks copywriting-nya:
"{{.Text}}"

lo ga perlu pake format markdown, kasih aja output lo dalam plaintext.`

	solutionTemplate = `Lo adalah seorang stand up komedi dengan pengalaman lebih dari 10 tahun. Spesialis lo adalah di roasting. Lo paling bisa kalo soal roasting. Ga cuma itu, lo juga ahli dalam copywriting sembari lo jadi stand up komedian. Nah sekarang lo ditugasin buat roasting-in hasil copywriting orang.

Karena situasinya lo lagi ditongkrongan sama temen lu yang minta roasting-in copywriting-nya, selain ngasih roasting, lo kasih saran dan solusi juga sekalian ngebuktiin (pamer) skill lo dibidang copywriting yang udah 10 tahun itu.

Lo ga usah intro, kasih roasting & saran pake bahasa sehari-hari yang gaul & friendly kayak lo gue gitu, ga usah formal.

Nih teks Copywriting-nya:
"{{.Text}}"

lo ga perlu pake format markdown, kasih aja output lo dalam plaintext.`

	// imagePrompt is fixed: image roasts take no user text.
	imagePrompt = `Lo itu seorang yang Graphic Designer dan Copywriter dengan pengalaman lebih dari 10 tahun.
Lo juga orang yang sering nge-roasting desain dan copywriting yang aneh-aneh dengan gaya lo yang asik, friendly.
Ga cuma roasting, lo juga suka ngasih edukasi ke orang-orang gimana benernya.
Nah, sekarang gue mau lo roasting gambar ini dari segi visual dan copywriting-nya,
straight to the point aja kayak lo lagi nongkrong santuy terus ada temen lo nunjukkin desain dan copywriting dia di gambar itu.
Hasil roasting-nya langsung plaintext aja, ga usah pake format markdown`
)

// templateData is the single value exposed to the mode templates.
type templateData struct {
	Text string
}

// Builder renders mode-specific roast prompts.
type Builder struct {
	templates map[domain.Mode]*template.Template
}

// NewBuilder parses the mode templates and returns a ready Builder.
func NewBuilder() (*Builder, error) {
	sources := map[domain.Mode]string{
		domain.ModeSpicy:    spicyTemplate,
		domain.ModeSolution: solutionTemplate,
	}

	templates := make(map[domain.Mode]*template.Template, len(sources))
	for mode, src := range sources {
		tmpl, err := template.New(string(mode)).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s prompt template: %w", mode, err)
		}
		templates[mode] = tmpl
	}

	return &Builder{templates: templates}, nil
}

// Build renders the prompt for the given mode with the user's copywriting
// text embedded verbatim. Returns domain.ErrInvalidMode for a mode the
// builder has no template for.
func (b *Builder) Build(mode domain.Mode, userText string) (string, error) {
	tmpl, ok := b.templates[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, templateData{Text: userText}); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", mode, err)
	}

	return sb.String(), nil
}

// ImagePrompt returns the fixed prompt used for image roasts.
func (b *Builder) ImagePrompt() string {
	return imagePrompt
}
