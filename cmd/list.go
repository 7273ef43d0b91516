package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"landscape/internal/catalog"
	"landscape/internal/db"
	"landscape/internal/filter"
	"landscape/internal/model"
	"landscape/internal/spatial"
	"landscape/internal/util"
)

// listOptions mirrors the sidebar controls as flags.
type listOptions struct {
	show    []string
	price   []string
	cuisine []string
	ring    float64
	sort    string
	days    []string
	from    int
	to      int
	json    bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the competitors that match a set of filters",
	Example: `  landscape list --show dining,bars --ring 1
  landscape list --show gyms --sort rating --days fri,sat --from 6 --to 9 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		database, err := openStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		dataset, err := db.ListCompetitors(database)
		if err != nil {
			return err
		}
		engine := filter.NewEngine()
		state, err := listOpts.state(engine.Taxonomy)
		if err != nil {
			return err
		}
		return writeList(cmd.OutOrStdout(), engine, dataset, state, listOpts.json)
	},
}

func init() {
	f := listCmd.Flags()
	f.StringSliceVar(&listOpts.show, "show", nil, "Category or group ids to show (default: all)")
	f.StringSliceVar(&listOpts.price, "price", nil, "Price tiers to keep, e.g. '$$,$$$' (default: all)")
	f.StringSliceVar(&listOpts.cuisine, "cuisine", nil, "Cuisine tags to keep for dining (default: all)")
	f.Float64Var(&listOpts.ring, "ring", 0, "Only include competitors within this ring (0.5, 1, 2 or 3 miles)")
	f.StringVar(&listOpts.sort, "sort", "distance", "Sort by distance or rating")
	f.StringSliceVar(&listOpts.days, "days", nil, "Days for the open-hours check, e.g. fri,sun")
	f.IntVar(&listOpts.from, "from", 14, "Start hour of the open-hours check (0-24)")
	f.IntVar(&listOpts.to, "to", 18, "End hour of the open-hours check (0-24); before --from wraps past midnight")
	f.BoolVar(&listOpts.json, "json", false, "Print JSON instead of a table")
}

// state converts the flags into a filter state.
func (o listOptions) state(t *catalog.Taxonomy) (filter.State, error) {
	s := filter.DefaultState()

	if len(o.show) == 0 {
		s.ShowAll(t)
	}
	for _, id := range o.show {
		h := filter.HighlightFor(t, id)
		if !h.Active() {
			return s, fmt.Errorf("unknown category %q", id)
		}
		for _, c := range t.AllCategoryIDs() {
			if h.Has(c) {
				s.Categories.Add(c)
			}
		}
	}

	if len(o.price) > 0 {
		s.PriceTiers = filter.NewSet[model.PriceTier]()
		for _, p := range o.price {
			tier := model.PriceTier(p)
			if tier == "" || !catalog.ValidPriceTier(tier) {
				return s, fmt.Errorf("unknown price tier %q", p)
			}
			s.PriceTiers.Add(tier)
		}
	}

	if len(o.cuisine) > 0 {
		s.Cuisines = filter.NewSet[model.CuisineTag]()
		for _, c := range o.cuisine {
			tag := model.CuisineTag(c)
			if !catalog.ValidCuisineTag(tag) {
				return s, fmt.Errorf("unknown cuisine %q", c)
			}
			s.Cuisines.Add(tag)
		}
	}

	if o.ring != 0 {
		if _, ok := spatial.RingByMiles(o.ring); !ok {
			return s, fmt.Errorf("no %v mile ring", o.ring)
		}
		s.Rings = filter.NewSet(o.ring)
		s.SetClip(true)
	}

	key, ok := filter.ParseSortKey(o.sort)
	if !ok {
		return s, fmt.Errorf("unknown sort %q", o.sort)
	}
	s.SetSort(key)

	if len(o.days) > 0 {
		s.Time.Enabled = true
		s.Time.Days = filter.NewSet[model.DayOfWeek]()
		for _, d := range o.days {
			day := model.DayOfWeek(d)
			if !slices.Contains(model.Weekdays, day) {
				return s, fmt.Errorf("unknown day %q", d)
			}
			s.Time.Days.Add(day)
		}
		s.SetHours(o.from, o.to)
	}
	return s, nil
}

type listEntry struct {
	Ordinal       int      `json:"ordinal"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	DistanceMiles float64  `json:"distanceMiles"`
	Rating        *float64 `json:"rating"`
	ReviewCount   *int     `json:"reviewCount"`
	PriceTier     string   `json:"priceTier,omitempty"`
	CuisineTag    string   `json:"cuisineTag,omitempty"`
	Status        string   `json:"status"`
}

func writeList(w io.Writer, engine filter.Engine, dataset []model.Competitor, state filter.State, asJSON bool) error {
	visible := engine.VisibleAndSorted(dataset, state)

	if asJSON {
		entries := make([]listEntry, 0, len(visible))
		for _, a := range visible {
			c := a.Competitor
			entries = append(entries, listEntry{
				Ordinal:       c.Ordinal,
				Name:          c.Name,
				Category:      string(c.Category),
				DistanceMiles: a.DistanceMiles,
				Rating:        c.Rating,
				ReviewCount:   c.ReviewCount,
				PriceTier:     string(c.PriceTier),
				CuisineTag:    string(c.CuisineTag),
				Status:        engine.StatusOf(c, state).String(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "CATEGORY", "DIST", "RATING", "REVIEWS", "PRICE", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, a := range visible {
		c := a.Competitor
		t.Row(
			strconv.Itoa(i+1),
			c.Name,
			engine.Taxonomy.Path(c.Category),
			util.FormatDistance(a.DistanceMiles),
			util.FormatRating(c.Rating),
			util.FormatReviewCount(c.ReviewCount),
			util.FormatOptional(string(c.PriceTier)),
			engine.StatusOf(c, state).Label(),
		)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d of %d competitors", len(visible), len(dataset))
	if state.Time.Enabled {
		summary += "  ·  " + state.Time.Window().Badge()
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
