// crmctl roda o motor de filtros, kanban e registro de interações sobre as
// fixtures, sem subir o servidor HTTP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/memory"
	"github.com/xavierca1/ligue-crm/internal/infra/seed"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// app agrupa os use cases montados sobre um Store recém semeado.
type app struct {
	prospects   *usecase.ProspectUseCase
	tasks       *usecase.TaskUseCase
	dashboard   *usecase.DashboardUseCase
	interaction *usecase.RecordInteractionUseCase
}

func newApp(now time.Time) (*app, error) {
	store := memory.NewStore()
	if err := seed.Load(store, now); err != nil {
		return nil, err
	}
	clock := func() time.Time { return now }

	prospectRepo := memory.NewProspectRepository(store)
	taskRepo := memory.NewTaskRepository(store)
	interactionRepo := memory.NewInteractionRepository(store)

	return &app{
		prospects: usecase.NewProspectUseCase(prospectRepo, interactionRepo, clock),
		tasks:     usecase.NewTaskUseCase(taskRepo, nil, usecase.NoopPublisher, clock, "Juan Pérez"),
		dashboard: usecase.NewDashboardUseCase(
			prospectRepo, taskRepo,
			memory.NewContactRepository(store),
			memory.NewNotificationRepository(store),
			clock,
		),
		interaction: usecase.NewRecordInteractionUseCase(
			prospectRepo, taskRepo, interactionRepo,
			nil, usecase.NoopPublisher, clock, "Juan Pérez",
		),
	}, nil
}

type filterFlags struct {
	status   []string
	priority []string
	product  []string
	source   []string
	assignee []string
	from     string
	to       string
	search   string
	overdue  bool
	by       string
	format   string
}

func main() {
	logrus.SetLevel(logrus.WarnLevel)
	if err := newRootCmd(os.Stdout, time.Now).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:          "crmctl",
		Short:        "Consulta o CRM de demonstração a partir das fixtures",
		SilenceUsage: true,
	}
	root.SetOut(out)

	var pf filterFlags
	prospectsCmd := &cobra.Command{
		Use:   "prospects",
		Short: "Lista prospects filtrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(now())
			if err != nil {
				return err
			}
			f, err := prospectFilter(pf)
			if err != nil {
				return err
			}
			list, err := a.prospects.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if pf.format == "json" {
				return writeJSON(out, list)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOMBRE\tEMAIL\tESTADO\tPRODUCTO\tFUENTE")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Status, p.Product, p.Source)
			}
			return tw.Flush()
		},
	}
	f := prospectsCmd.Flags()
	f.StringSliceVar(&pf.status, "status", nil, "Status aceitos (repetível ou separado por vírgula)")
	f.StringSliceVar(&pf.product, "product", nil, "Produtos aceitos")
	f.StringSliceVar(&pf.source, "source", nil, "Fontes aceitas")
	f.StringVar(&pf.from, "from", "", "Criado a partir de (YYYY-MM-DD)")
	f.StringVar(&pf.to, "to", "", "Criado até (YYYY-MM-DD, inclusivo)")
	f.StringVar(&pf.search, "search", "", "Busca em nome e email")
	f.StringVar(&pf.format, "format", "table", "table ou json")

	var tf filterFlags
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Lista tarefas filtradas com o flag de atraso",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(now())
			if err != nil {
				return err
			}
			f, err := taskFilter(tf)
			if err != nil {
				return err
			}
			cards, err := a.tasks.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if tf.overdue {
				kept := cards[:0]
				for _, c := range cards {
					if c.Overdue {
						kept = append(kept, c)
					}
				}
				cards = kept
			}
			if tf.format == "json" {
				return writeJSON(out, cards)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTÍTULO\tESTADO\tPRIORIDAD\tVENCE\tATRASADA")
			for _, c := range cards {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", c.ID, c.Title, c.Status, c.Priority, c.DueDate.Format(time.DateTime), c.Overdue)
			}
			return tw.Flush()
		},
	}
	f = tasksCmd.Flags()
	f.StringSliceVar(&tf.status, "status", nil, "Status aceitos")
	f.StringSliceVar(&tf.priority, "priority", nil, "Prioridades aceitas")
	f.StringSliceVar(&tf.assignee, "assigned-to", nil, "Responsáveis aceitos")
	f.StringVar(&tf.from, "from", "", "Vence a partir de (YYYY-MM-DD)")
	f.StringVar(&tf.to, "to", "", "Vence até (YYYY-MM-DD, inclusivo)")
	f.StringVar(&tf.search, "search", "", "Busca em título e descrição")
	f.BoolVar(&tf.overdue, "overdue", false, "Só tarefas atrasadas")
	f.StringVar(&tf.format, "format", "table", "table ou json")

	var bf filterFlags
	boardCmd := &cobra.Command{
		Use:       "board <prospects|tasks>",
		Short:     "Mostra o kanban agrupado por coluna",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"prospects", "tasks"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(now())
			if err != nil {
				return err
			}
			switch args[0] {
			case "prospects":
				board, err := a.prospects.Board(cmd.Context(), usecase.ProspectFilter{})
				if err != nil {
					return err
				}
				for _, col := range board {
					fmt.Fprintf(out, "%s (%d)\n", col.Status, len(col.Prospects))
					for _, p := range col.Prospects {
						fmt.Fprintf(out, "  - %s\n", p.Name)
					}
				}
				return nil
			case "tasks":
				board, err := a.tasks.Board(cmd.Context(), usecase.TaskBoardKind(bf.by), usecase.TaskFilter{})
				if err != nil {
					return err
				}
				for _, col := range board {
					fmt.Fprintf(out, "%s (%d)\n", col.ID, len(col.Tasks))
					for _, c := range col.Tasks {
						mark := ""
						if c.Overdue {
							mark = " [atrasada]"
						}
						fmt.Fprintf(out, "  - %s%s\n", c.Title, mark)
					}
				}
				return nil
			}
			return fmt.Errorf("board desconhecido: %s", args[0])
		},
	}
	boardCmd.Flags().StringVar(&bf.by, "by", "status", "Kanban de tarefas: status ou priority")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Resumo do funil e das tarefas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(now())
			if err != nil {
				return err
			}
			s, err := a.dashboard.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(out, s)
		},
	}

	var ri usecase.RecordInteractionInput
	var followUp string
	recordCmd := &cobra.Command{
		Use:   "record <prospect-id>",
		Short: "Simula o registro de uma interação e mostra a tarefa derivada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(now())
			if err != nil {
				return err
			}
			input := ri
			input.ProspectID = args[0]
			if s, ok := entity.ParseProspectStatus(string(input.NewStatus)); ok {
				input.NewStatus = s
			}
			if followUp != "" {
				t, err := parseDay(followUp, false)
				if err != nil {
					return err
				}
				input.FollowUpDate = t
			}
			res, err := a.interaction.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			return writeJSON(out, res)
		},
	}
	f = recordCmd.Flags()
	f.StringVar((*string)(&ri.InteractionType), "type", "", "llamada, mensaje, email ou reunion")
	f.StringVar((*string)(&ri.Result), "result", "", "Código do resultado")
	f.StringVar((*string)(&ri.NewStatus), "status", "", "Novo status do prospect")
	f.StringVar((*string)(&ri.NextAction), "next", "", "Próxima ação")
	f.StringVar(&followUp, "follow-up", "", "Data explícita de seguimento (YYYY-MM-DD)")
	f.StringVar(&ri.Notes, "notes", "", "Notas")

	root.AddCommand(prospectsCmd, tasksCmd, boardCmd, dashboardCmd, recordCmd)
	root.SetContext(context.Background())
	return root
}

func prospectFilter(ff filterFlags) (usecase.ProspectFilter, error) {
	var f usecase.ProspectFilter
	for _, raw := range ff.status {
		s, ok := entity.ParseProspectStatus(raw)
		if !ok {
			return f, fmt.Errorf("status inválido: %q", raw)
		}
		f.Status = append(f.Status, s)
	}
	dr, err := dateRange(ff.from, ff.to)
	if err != nil {
		return f, err
	}
	f.Product = ff.product
	f.Source = ff.source
	f.DateRange = dr
	f.Search = ff.search
	return f, nil
}

func taskFilter(ff filterFlags) (usecase.TaskFilter, error) {
	var f usecase.TaskFilter
	for _, raw := range ff.status {
		s, ok := entity.ParseTaskStatus(raw)
		if !ok {
			return f, fmt.Errorf("status inválido: %q", raw)
		}
		f.Status = append(f.Status, s)
	}
	for _, raw := range ff.priority {
		p := entity.TaskPriority(strings.TrimSpace(raw))
		if !p.Valid() {
			return f, fmt.Errorf("prioridade inválida: %q", raw)
		}
		f.Priority = append(f.Priority, p)
	}
	dr, err := dateRange(ff.from, ff.to)
	if err != nil {
		return f, err
	}
	f.AssignedTo = ff.assignee
	f.DateRange = dr
	f.Search = ff.search
	return f, nil
}

func dateRange(from, to string) (*usecase.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	var dr usecase.DateRange
	var err error
	if from != "" {
		if dr.From, err = parseDay(from, false); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if dr.To, err = parseDay(to, true); err != nil {
			return nil, err
		}
	}
	return &dr, nil
}

func parseDay(raw string, endOfDay bool) (*time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q: use YYYY-MM-DD", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
