package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
)

type residenceOptions struct {
	blocks int
	floors int
	units  int
	asJSON bool
}

type residenceReport struct {
	Residence int  `json:"residence"`
	Block     int  `json:"block"`
	Floor     int  `json:"floor"`
	Unit      int  `json:"unit"`
	Exists    bool `json:"exists"`
}

func newResidenceCommand() *cobra.Command {
	defaults := models.DefaultLayout()
	opts := &residenceOptions{}
	cmd := &cobra.Command{
		Use:   "residence <number>...",
		Short: "Check residence numbers against a community layout",
		Long: `Decode residence numbers (block*1000 + floor*100 + unit) and report whether
each exists in the layout given by --blocks, --floors and --units.

Exits non-zero when any residence does not exist.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResidence(cmd, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.blocks, "blocks", defaults.Blocks, "number of blocks")
	cmd.Flags().IntVar(&opts.floors, "floors", defaults.Floors, "floors per block (1-9)")
	cmd.Flags().IntVar(&opts.units, "units", defaults.UnitsPerFloor, "units per floor (1-99)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print one JSON object per residence")
	return cmd
}

func runResidence(cmd *cobra.Command, opts *residenceOptions, args []string) error {
	layout, err := models.NewLayout(opts.blocks, opts.floors, opts.units)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	missing := 0
	for _, arg := range args {
		residence, err := id.ParseResidenceID(arg)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
		report := residenceReport{
			Residence: int(residence),
			Block:     residence.Block(),
			Floor:     residence.Floor(),
			Unit:      residence.Unit(),
			Exists:    layout.Contains(residence),
		}
		if !report.Exists {
			missing++
		}
		if opts.asJSON {
			if err := enc.Encode(report); err != nil {
				return err
			}
			continue
		}
		status := "exists"
		if !report.Exists {
			status = "does not exist"
		}
		fmt.Fprintf(out, "%d: block %d, floor %d, unit %d - %s\n",
			report.Residence, report.Block, report.Floor, report.Unit, status)
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d residences do not exist", missing, len(args))
	}
	return nil
}
