package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rgverify/rgverify"
)

func main() {
	var (
		programPath = flag.String("program", "", "Path to the rely-guarantee program file")
		manifest    = flag.String("manifest", "", "Path to a batch manifest file")
		maxRounds   = flag.Int("max-rounds", 0, "Override the fixpoint round cap (0 keeps the default)")
		strict      = flag.Bool("strict", false, "Check the monotonicity invariant on every regeneration round")
		printProof  = flag.Bool("print-proof", false, "Print each thread's stabilised proof outline")
	)
	flag.Parse()

	if *manifest != "" {
		runManifestMode(*manifest, *maxRounds, *strict)
		return
	}

	if *programPath == "" {
		log.Fatal("Either -program or -manifest must be informed")
	}

	src, err := os.ReadFile(*programPath)
	if err != nil {
		log.Fatalf("Can't read program file: %s", err.Error())
	}

	cfg := rgverify.NewEngineConfig()
	if *maxRounds > 0 {
		cfg.MaxRounds = *maxRounds
	}
	cfg.Strict = *strict

	oracle := rgverify.NewDefaultOracle()
	prog, err := rgverify.LoadProgram(src, oracle)
	if err != nil {
		log.Fatalf("Can't load program: %s", err.Error())
	}

	res, err := rgverify.Verify(prog, oracle, cfg)
	if err != nil {
		log.Fatalf("Verification engine error: %s", err.Error())
	}

	if *printProof {
		for _, t := range prog.Threads {
			fmt.Println(rgverify.PrintProofOutline(t))
		}
	}

	printVerdict(res)
	if !res.Verified {
		os.Exit(1)
	}
}

func printVerdict(res *rgverify.VerificationResult) {
	fmt.Printf("rounds: %d\n", res.Rounds)
	fmt.Printf("postcondition holds: %t\n", res.PostconditionHolds)
	if len(res.FailedAssertions) == 0 {
		fmt.Println("assertions: all held")
	} else {
		fmt.Printf("assertions: %d failed\n", len(res.FailedAssertions))
		for _, a := range res.FailedAssertions {
			fmt.Println("  " + a.Pretty())
		}
	}
	if res.Verified {
		fmt.Println("VERIFIED")
	} else {
		fmt.Println("NOT VERIFIED")
	}
}

func runManifestMode(path string, maxRounds int, strict bool) {
	m, err := rgverify.LoadManifest(path)
	if err != nil {
		log.Fatalf("Can't load manifest: %s", err.Error())
	}
	if maxRounds > 0 {
		m.MaxRounds = maxRounds
	}
	if strict {
		m.Strict = true
	}

	report := rgverify.RunManifest(m)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("Can't encode report: %s", err.Error())
	}

	for _, e := range report.Entries {
		if e.Error != "" || !e.Verified {
			os.Exit(1)
		}
	}
}
