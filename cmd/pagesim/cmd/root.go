// Package cmd provides the command-line interface for the page table
// simulator.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/trace"
	"github.com/sarchlab/pagesim/vm"
	"github.com/sarchlab/pagesim/vm/mmu"
	"github.com/sarchlab/pagesim/vm/pager"
)

var (
	numFrames    int
	algo         string
	options      string
	recordDB     string
	monitorOn    bool
	monitorPort  int
	monitorDelay time.Duration
	openBrowser  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim [flags] INPUTFILE RANDFILE",
	Short: "pagesim replays an instruction trace against a simulated MMU.",
	Long: `pagesim replays an instruction trace against a simulated MMU ` +
		`with a configurable number of physical frames and a selectable ` +
		`page replacement policy. It reports the paging events, the final ` +
		`paging state, and the total cost of the run.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().IntVarP(&numFrames, "frames", "f", vm.MaxFrames,
		"number of physical frames")
	rootCmd.Flags().StringVarP(&algo, "algo", "a", "f",
		"replacement algorithm: f FIFO, r Random, c Clock, e NRU, "+
			"a Aging, w Working Set")
	rootCmd.Flags().StringVarP(&options, "options", "o", "",
		"output options, a concatenation of O, P, F, S, x, y, f, a")
	rootCmd.Flags().StringVar(&recordDB, "record", "",
		"record paging events into the named SQLite database")
	rootCmd.Flags().BoolVar(&monitorOn, "monitor", false,
		"serve simulation state over HTTP while running")
	rootCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"port of the monitoring server, 0 picks a free port")
	rootCmd.Flags().DurationVar(&monitorDelay, "monitor-delay", 0,
		"pause between instructions so the monitor can keep up")
	rootCmd.Flags().BoolVar(&openBrowser, "open-browser", false,
		"open the monitoring page in the default browser")
}

// Execute runs the root command. Defaults can also come from a .env file or
// the environment, using the PAGESIM_FRAMES, PAGESIM_ALGO, PAGESIM_OPTIONS,
// PAGESIM_RECORD, and PAGESIM_MONITOR_PORT variables.
func Execute() {
	_ = godotenv.Load()
	applyEnvDefaults()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func applyEnvDefaults() {
	if v, ok := os.LookupEnv("PAGESIM_FRAMES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			numFrames = n
		}
	}

	if v, ok := os.LookupEnv("PAGESIM_ALGO"); ok {
		algo = v
	}

	if v, ok := os.LookupEnv("PAGESIM_OPTIONS"); ok {
		options = v
	}

	if v, ok := os.LookupEnv("PAGESIM_RECORD"); ok {
		recordDB = v
	}

	if v, ok := os.LookupEnv("PAGESIM_MONITOR_PORT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			monitorPort = n
		}
	}
}

func run(_ *cobra.Command, args []string) error {
	procs, instructions, err := trace.LoadInput(args[0])
	if err != nil {
		return err
	}

	randStream, err := trace.LoadRandomStream(args[1])
	if err != nil {
		return err
	}

	p, err := buildPager(procs, randStream)
	if err != nil {
		return err
	}

	comp := mmu.MakeBuilder().
		WithProcesses(procs).
		WithNumFrames(numFrames).
		WithPager(p).
		Build("MMU")

	attachHooks(comp)

	monitor, bar := startMonitor(comp, uint64(len(instructions)))

	for _, inst := range instructions {
		comp.Step(inst)

		if bar != nil {
			bar.IncrementFinished(1)
		}

		if monitorOn && monitorDelay > 0 {
			time.Sleep(monitorDelay)
		}
	}

	if monitor != nil {
		monitor.CompleteProgressBar(bar)
	}

	printFinalReports(comp, procs)

	return nil
}

func buildPager(
	procs []*vm.Process,
	randStream *trace.RandomStream,
) (pager.Pager, error) {
	b := pager.MakeBuilder().
		WithProcesses(procs).
		WithNumFrames(numFrames).
		WithRandomSource(randStream)

	if strings.ContainsRune(options, 'a') {
		b = b.WithDebugWriter(os.Stdout)
	}

	return b.Build(algo)
}

func attachHooks(comp *mmu.Comp) {
	if strings.ContainsRune(options, 'O') {
		comp.AcceptHook(mmu.NewTraceLogger(os.Stdout))
	}

	if strings.ContainsAny(options, "xyf") {
		comp.AcceptHook(mmu.NewStateDumper(os.Stdout, options))
	}

	if recordDB != "" {
		recorder := datarecording.New(recordDB)
		comp.AcceptHook(datarecording.NewEventRecorder(recorder))

		sum := func() {
			datarecording.RecordOutcome(recorder, comp.Processes(),
				comp.Summary(), algo, numFrames)
		}
		atexit.Register(sum)
	}
}

func startMonitor(
	comp *mmu.Comp,
	totalInsts uint64,
) (*monitoring.Monitor, *monitoring.ProgressBar) {
	if !monitorOn {
		return nil, nil
	}

	monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
	if openBrowser {
		monitor = monitor.WithBrowserOpen()
	}

	monitor.RegisterMMU(comp)
	monitor.StartServer()

	bar := monitor.CreateProgressBar("instructions", totalInsts)

	return monitor, bar
}

// printFinalReports writes the end-of-run dumps in the order the option
// letters were given.
func printFinalReports(comp *mmu.Comp, procs []*vm.Process) {
	for _, opt := range options {
		switch opt {
		case 'P':
			mmu.FprintPageTables(os.Stdout, procs)
		case 'F':
			mmu.FprintFrameTable(os.Stdout, comp.FrameTable())
		case 'S':
			mmu.FprintSummary(os.Stdout, procs, comp.Summary())
		}
	}
}
