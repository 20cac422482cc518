package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/notify"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/restclient"
	"github.com/jhoicas/inventario-catalog/pkg/logger"
)

const (
	apiURLFlag  = "api-url"
	tokenFlag   = "token"
	timeoutFlag = "timeout"
)

// connFlags se registran en cada subcomando; vacío = se toma de CATALOG_API_URL / CATALOG_API_TOKEN.
func connFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		apiURLFlag: &cobraflags.StringFlag{
			Name:  apiURLFlag,
			Value: "",
			Usage: "URL base de la API (env CATALOG_API_URL, por defecto http://localhost:8080)",
		},
		tokenFlag: &cobraflags.StringFlag{
			Name:  tokenFlag,
			Value: "",
			Usage: "Bearer token JWT (env CATALOG_API_TOKEN)",
		},
		timeoutFlag: &cobraflags.StringFlag{
			Name:  timeoutFlag,
			Value: "15s",
			Usage: "Timeout por petición HTTP",
		},
	}
}

// session dependencias de un subcomando ya resueltas desde flags y entorno.
type session struct {
	client   *restclient.Client
	notifier catalog.Notifier
	log      *logger.Logger
	workers  int
	out      io.Writer
	in       io.Reader
}

func loadEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetDefault("CATALOG_API_URL", "http://localhost:8080")
	v.SetDefault("CATALOG_FALLBACK_WORKERS", catalog.DefaultFallbackWorkers)
	v.SetDefault("LOG_LEVEL", "warn")
	return v
}

func newSession(cmd *cobra.Command, flags map[string]cobraflags.Flag) (*session, error) {
	v := loadEnv()
	apiURL := flags[apiURLFlag].GetString()
	if apiURL == "" {
		apiURL = v.GetString("CATALOG_API_URL")
	}
	token := flags[tokenFlag].GetString()
	if token == "" {
		token = v.GetString("CATALOG_API_TOKEN")
	}
	timeout, err := time.ParseDuration(flags[timeoutFlag].GetString())
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return &session{
		client:   restclient.New(apiURL, token, timeout),
		notifier: notify.NewWriterNotifier(out),
		log:      logger.NewWithWriter(cmd.ErrOrStderr(), v.GetString("LOG_LEVEL")),
		workers:  v.GetInt("CATALOG_FALLBACK_WORKERS"),
		out:      out,
		in:       cmd.InOrStdin(),
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administra el árbol de categorías y los códigos de ítem",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetIn(os.Stdin)
	root.AddCommand(
		newTreeCommand(),
		newNextCodeCommand(),
		newRetypeCommand(),
		newDeleteCommand(),
	)
	return root
}
