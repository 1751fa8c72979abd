// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"assistjur/internal/config"
	"assistjur/internal/help"
	"assistjur/internal/mask"
	"assistjur/internal/observability"
	"assistjur/internal/pipeline"
	"assistjur/internal/report"
	"assistjur/internal/store"
	"assistjur/internal/version"
)

func main() {
	inputFile := flag.String("file", "", "Planilha de entrada (.xlsx, .xlsm, .csv ou .txt)")
	configFile := flag.String("config", "", "Arquivo de configuração (YAML)")
	profileName := flag.String("profile", "", "Perfil do arquivo de configuração a aplicar")
	listProfiles := flag.Bool("list-profiles", false, "Lista os perfis disponíveis")
	outputFormat := flag.String("format", "", "Formato de saída: "+strings.Join(report.DefaultRegistry.List(), ", "))
	outputFile := flag.String("output", "", "Arquivo de saída (padrão: stdout)")
	masked := flag.Bool("masked", false, "Mascara CPF, CNPJ e e-mail na exportação")
	onlyFlagged := flag.Bool("only-flagged", false, "Exibe apenas processos com padrões detectados")
	verbose := flag.Bool("verbose", false, "Inclui ocorrências por linha e a trilha do score")
	noColor := flag.Bool("no-color", false, "Desativa cores na saída")
	workers := flag.Int("workers", 0, "Número de workers de normalização (0 = automático)")
	storePath := flag.String("store", "", "Banco SQLite para persistir o lote (ex.: assistjur.db)")
	listBatches := flag.Bool("list-batches", false, "Lista os lotes persistidos no banco (--store)")
	helpPadroes := flag.String("help-padroes", "", "Documenta os padrões detectados ('list' para o índice)")
	showVersion := flag.Bool("version", false, "Exibe a versão")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	cfg := loadConfiguration(*configFile)
	if err := cfg.ApplyProfile(*profileName); err != nil {
		fatal(err)
	}
	applyFlags(cfg, *outputFormat, *masked, *onlyFlagged, *verbose, *noColor, *workers, *storePath)
	cfg.Defaults.NoColor = resolveNoColor(cfg.Defaults.NoColor, flagWasSet("no-color"),
		term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("NO_COLOR"))

	if *listProfiles {
		printProfiles(cfg)
		return
	}
	if *helpPadroes != "" {
		h := help.DefaultSystem(cfg.Defaults.NoColor)
		if strings.EqualFold(*helpPadroes, "list") {
			h.ShowPatternList(os.Stdout)
			return
		}
		if err := h.ShowPatternHelp(os.Stdout, *helpPadroes); err != nil {
			fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *listBatches {
		if cfg.Defaults.StorePath == "" {
			fatal(fmt.Errorf("--list-batches exige --store"))
		}
		if err := runListBatches(ctx, cfg.Defaults.StorePath); err != nil {
			fatal(err)
		}
		return
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Uso: assistjur --file <planilha> [opções]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(ctx, cfg, *inputFile, *outputFile); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, inputFile, outputFile string) error {
	observer := observability.NewFromEnv(os.Stderr)

	p, err := pipeline.New(cfg, observer)
	if err != nil {
		return err
	}
	rep, err := p.Run(ctx, inputFile)
	if err != nil {
		return err
	}

	if cfg.Defaults.StorePath != "" {
		st, err := store.NewSQLiteStore(cfg.Defaults.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveReport(ctx, rep); err != nil {
			return err
		}
	}

	masker := mask.Masker{Enabled: cfg.Defaults.Masked}
	out, err := report.Export(cfg.Defaults.Format, masker.Apply(rep), report.Options{
		Verbose:     cfg.Defaults.Verbose,
		NoColor:     cfg.Defaults.NoColor || outputFile != "",
		OnlyFlagged: cfg.Defaults.OnlyFlagged,
	})
	if err != nil {
		return err
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runListBatches(ctx context.Context, path string) error {
	st, err := store.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer st.Close()

	batches, err := st.ListBatches(ctx)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Println("Nenhum lote persistido.")
		return nil
	}
	for _, b := range batches {
		fmt.Printf("%s  %s  linhas=%d válidas=%d erros=%d sucesso=%.1f%%  %s\n",
			b.BatchID, b.CreatedAt.Format("2006-01-02 15:04"),
			b.TotalRows, b.ValidRows, b.ErrorCount, b.SuccessRate*100, b.SourceFile)
	}
	return nil
}

// loadConfiguration loads the configuration file or falls back to the
// defaults with a warning.
func loadConfiguration(configFile string) *config.Config {
	path := configFile
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Aviso: falha ao carregar configuração: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usando configuração padrão")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// applyFlags overlays explicitly-set CLI flags onto the configuration.
func applyFlags(cfg *config.Config, format string, masked, onlyFlagged, verbose, noColor bool, workers int, storePath string) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if format != "" {
		cfg.Defaults.Format = format
	}
	if set["masked"] {
		cfg.Defaults.Masked = masked
	}
	if set["only-flagged"] {
		cfg.Defaults.OnlyFlagged = onlyFlagged
	}
	if set["verbose"] {
		cfg.Defaults.Verbose = verbose
	}
	if set["no-color"] {
		cfg.Defaults.NoColor = noColor
	}
	if workers > 0 {
		cfg.Defaults.Workers = workers
	}
	if storePath != "" {
		cfg.Defaults.StorePath = storePath
	}
}

// resolveNoColor decides the final color toggle. An explicit
// --no-color (either value) wins; otherwise piped output or the
// NO_COLOR convention disables colors.
func resolveNoColor(configured, explicit, isTTY bool, noColorEnv string) bool {
	if explicit {
		return configured
	}
	return configured || !isTTY || noColorEnv != ""
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printProfiles(cfg *config.Config) {
	if len(cfg.Profiles) == 0 {
		fmt.Println("Nenhum perfil definido.")
		return
	}
	for name, p := range cfg.Profiles {
		desc := p.Description
		if desc == "" {
			desc = "(sem descrição)"
		}
		fmt.Printf("  %-12s %s\n", name, desc)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
	os.Exit(1)
}
