// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/cmd/mdcr/cli/doctor"
	"github.com/razorheadfx/mediocore/lib/config"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

type commandParams struct {
	cli.GlobalParams
	cli.JSONOutput
}

// Command returns the "doctor" command.
func Command() *cli.Command {
	var params commandParams

	return &cli.Command{
		Name:    "doctor",
		Summary: "Check that this host's frequency scaling can be managed",
		Description: `Check the configuration, the sysfs cpu directory, discovery of every
core, write access to the scaling attributes, governor agreement across
cores, and privileges. Reads only; never writes sysfs.

Exits 1 when a check fails. Warnings (such as running without root)
do not fail the command.`,
		Usage: "mdcr doctor [flags]",
		Examples: []cli.Example{
			{
				Description: "Check the host",
				Command:     "mdcr doctor",
			},
			{
				Description: "Check a copied sysfs tree",
				Command:     "mdcr doctor --sysfs-root ./testdata/cpu",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			results := runChecks(params.GlobalParams, doctor.IsRoot(), logger)

			if done, err := params.EmitJSON(doctor.BuildJSON(results)); done {
				if err != nil {
					return err
				}
				if doctor.AnyFailed(results) {
					return &cli.ExitError{Code: cli.ExitFailure}
				}
				return nil
			}
			return doctor.PrintChecklist(os.Stdout, results)
		},
	}
}

// runChecks runs every check in order. Later checks are skipped when
// the state they inspect could not be established.
func runChecks(params cli.GlobalParams, root bool, logger *slog.Logger) []doctor.Result {
	var results []doctor.Result

	cfg, result := checkConfig(params)
	results = append(results, result)
	if cfg == nil {
		return append(results,
			doctor.Skip("sysfs root", "configuration did not load"),
			doctor.Skip("discovery", "configuration did not load"),
			doctor.Skip("writable", "configuration did not load"),
			doctor.Skip("governors", "configuration did not load"),
			checkPrivileges(root),
		)
	}

	result = checkRoot(cfg.SysfsRoot)
	results = append(results, result)
	if result.Status == doctor.StatusFail {
		return append(results,
			doctor.Skip("discovery", "sysfs root is not readable"),
			doctor.Skip("writable", "sysfs root is not readable"),
			doctor.Skip("governors", "sysfs root is not readable"),
			checkPrivileges(root),
		)
	}

	cores, result := checkDiscovery(cfg.SysfsRoot, logger)
	results = append(results, result)
	if cores == nil {
		return append(results,
			doctor.Skip("writable", "no cores discovered"),
			doctor.Skip("governors", "no cores discovered"),
			checkPrivileges(root),
		)
	}

	return append(results,
		checkWritable(cores, root),
		checkGovernors(cores),
		checkPrivileges(root),
	)
}

func checkConfig(params cli.GlobalParams) (*config.Config, doctor.Result) {
	cfg, err := params.LoadConfig()
	if err != nil {
		return nil, doctor.FailWithHint("config", err.Error(),
			"fix the file named by --config or $"+config.EnvironmentVariable)
	}
	source := params.ConfigPath
	if source == "" {
		source = os.Getenv(config.EnvironmentVariable)
	}
	if source == "" {
		return cfg, doctor.Pass("config", "built-in defaults")
	}
	return cfg, doctor.Pass("config", source)
}

func checkRoot(root string) doctor.Result {
	if _, err := os.ReadDir(root); err != nil {
		return doctor.FailWithHint("sysfs root", err.Error(),
			"point --sysfs-root or sysfs_root at the cpu directory, usually "+cpufreq.DefaultRoot)
	}
	return doctor.Pass("sysfs root", root)
}

func checkDiscovery(root string, logger *slog.Logger) ([]*cpufreq.Core, doctor.Result) {
	cores, err := cpufreq.DiscoverFrom(root, logger)
	if err != nil {
		return nil, doctor.FailWithHint("discovery", err.Error(),
			"load a cpufreq driver (intel_pstate, amd-pstate, acpi-cpufreq) or check the cpuN/cpufreq files")
	}
	if len(cores) == 0 {
		return nil, doctor.FailWithHint("discovery", "no cpuN entries under "+root,
			"point --sysfs-root at the directory holding cpu0, cpu1, ...")
	}
	numbers := make([]int, 0, len(cores))
	for _, core := range cores {
		numbers = append(numbers, core.Number())
	}
	return cores, doctor.Pass("discovery", fmt.Sprintf("%d cores (%s)", len(cores), cpufreq.FormatCoreList(numbers)))
}

// checkWritable probes write access with access(2). Without root a
// read-only result is expected and only warns; with root it means
// sysfs is mounted read-only.
func checkWritable(cores []*cpufreq.Core, root bool) doctor.Result {
	var readOnly []string
	for _, core := range cores {
		store := cpufreq.SysfsStore{Dir: core.Path()}
		for _, attribute := range cpufreq.WritableAttributes {
			if !store.Writable(attribute) {
				readOnly = append(readOnly, fmt.Sprintf("cpu%d/%s", core.Number(), attribute))
			}
		}
	}
	if len(readOnly) == 0 {
		return doctor.Pass("writable", fmt.Sprintf("all scaling attributes on %d cores", len(cores)))
	}

	message := fmt.Sprintf("%d attributes are read-only (first: %s)", len(readOnly), readOnly[0])
	if !root {
		return doctor.Warn("writable", message+"; "+cli.PrivilegeHint)
	}
	return doctor.FailWithHint("writable", message, "remount sysfs read-write")
}

func checkGovernors(cores []*cpufreq.Core) doctor.Result {
	byGovernor := make(map[string][]int)
	for _, core := range cores {
		byGovernor[core.Governor()] = append(byGovernor[core.Governor()], core.Number())
	}
	if len(byGovernor) == 1 {
		return doctor.Pass("governors", "all cores use "+cores[0].Governor())
	}

	governors := make([]string, 0, len(byGovernor))
	for governor := range byGovernor {
		governors = append(governors, governor)
	}
	slices.Sort(governors)
	parts := make([]string, 0, len(governors))
	for _, governor := range governors {
		parts = append(parts, fmt.Sprintf("%s on %s", governor, cpufreq.FormatCoreList(byGovernor[governor])))
	}
	return doctor.Warn("governors", "cores disagree: "+strings.Join(parts, ", "))
}

func checkPrivileges(root bool) doctor.Result {
	if root {
		return doctor.Pass("privileges", "running as root")
	}
	return doctor.Warn("privileges", "not running as root; set, preset apply, and snapshot restore need sudo")
}
