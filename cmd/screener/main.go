// Command screener runs one screening pass from the command line using the
// deterministic local embedder. It reads the job description from a file,
// resumes from the remaining arguments, and prints the ranked table plus the
// decision summary; -csv writes the full export next to stdout output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/adapter/embedding"
	"github.com/fairyhunter13/resume-screener/internal/adapter/textextractor"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/screening"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

func main() {
	var (
		jdPath     = flag.String("jd", "", "path to the job description text file (required)")
		skills     = flag.String("skills", "", "comma-separated required skills")
		years      = flag.Float64("years", 0, "required years of experience (0 = unspecified)")
		roleTitle  = flag.String("role", "", "role title override")
		vocabPath  = flag.String("vocab", "", "path to a YAML skill vocabulary")
		csvPath    = flag.String("csv", "", "write the full CSV export to this path")
		strongOnly = flag.Bool("strong-only", false, "restrict the CSV export to the strong tier")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if *jdPath == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: screener -jd job.txt [flags] resume1.txt resume2.pdf ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config: %v", err)
	}

	jd, err := os.ReadFile(*jdPath)
	if err != nil {
		fatal("read job description: %v", err)
	}

	vocab := screening.DefaultVocabulary()
	if *vocabPath != "" {
		if vocab, err = screening.LoadVocabulary(*vocabPath); err != nil {
			fatal("load vocabulary: %v", err)
		}
	}

	req := usecase.ScreenRequest{
		JobDescription: string(jd),
		RequiredYears:  *years,
		RoleTitle:      *roleTitle,
	}
	if *skills != "" {
		for _, s := range strings.Split(*skills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.RequiredSkills = append(req.RequiredSkills, s)
			}
		}
	}
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fatal("read resume %s: %v", path, err)
		}
		req.Files = append(req.Files, usecase.UploadFile{Name: path, Data: data})
	}

	embedder := embedding.NewCache(embedding.NewLocalEmbedder(cfg.EmbeddingDim), cfg.EmbedCacheSize)
	extractor := textextractor.NewResolver(nil)
	svc := usecase.NewScreenService(cfg, embedder, extractor, vocab)

	out, err := svc.Screen(context.Background(), req)
	if err != nil {
		fatal("screening: %v", err)
	}

	fmt.Printf("Role: %s\n\n", out.RoleTitle)
	if len(out.JDAnalysis.Issues) > 0 {
		fmt.Println("JD issues:")
		for _, issue := range out.JDAnalysis.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		fmt.Println()
	}

	fmt.Printf("%-30s %8s %8s %8s %8s\n", "FILE", "FINAL", "SEM", "SKILL", "EXP")
	for _, c := range out.Candidates {
		fmt.Printf("%-30s %8.3f %8.3f %8.3f %8.3f\n",
			c.FileName, c.FinalScore, c.Semantic, c.SkillScore, c.ExperienceScore)
	}
	fmt.Printf("\n%s\n\n%s\n", out.Decision, out.EmailDraft)

	if *csvPath != "" {
		tier := usecase.ExportAll
		if *strongOnly {
			tier = usecase.ExportStrong
		}
		data, err := svc.ExportCSV(out, tier)
		if err != nil {
			fatal("export: %v", err)
		}
		if err := os.WriteFile(*csvPath, data, 0o644); err != nil {
			fatal("write csv: %v", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *csvPath)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
