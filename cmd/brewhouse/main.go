package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"brewhouse/common/log"
	"brewhouse/service"
	_profile "brewhouse/service/profile"
)

const (
	greetingBanner = `
 ___  ___ ___ _ _ _ _  _  ___  _ _  ___  ___
| . >| . \ __| | | | || || . || | |/ __>| __>
| . \|   / _>| | | |    || | || ' |\__ \| _>
|___/|_\_\___|__/_/|_||_|` + "`___'`___'<___/|___>" + `
`
)

var (
	profile      *_profile.Profile
	mode         string
	addr         string
	port         int
	data         string
	temperatures string

	rootCmd = &cobra.Command{
		Use:   "brewhouse",
		Short: "Build your own beverage, saved under your account.",
		Run: func(_cmd *cobra.Command, _args []string) {
			if profile == nil {
				os.Exit(1)
			}

			ctx, cancel := context.WithCancel(context.Background())
			s, err := service.NewService(ctx, profile)
			if err != nil {
				cancel()
				log.Error("failed to create service", zap.Error(err))
				return
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			// The default signal sent by the `kill` command is SIGTERM,
			// which is taken as the graceful shutdown signal for many systems, eg., Kubernetes, Gunicorn.
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-c
				log.Info(fmt.Sprintf("%s received.", sig.String()))
				s.Shutdown(ctx)
				cancel()
			}()

			println(greetingBanner)
			fmt.Printf("Version %s has been started on port %d\n", profile.Version, profile.Port)

			if err := s.Start(ctx); err != nil {
				log.Error("failed to start service", zap.Error(err))
				cancel()
			}

			// Wait for CTRL-C.
			<-ctx.Done()
			log.Sync()
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().StringVarP(&addr, "addr", "a", "", "address of server")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 8081, "port of server")
	rootCmd.PersistentFlags().StringVarP(&data, "data", "d", "", "data directory")
	rootCmd.PersistentFlags().StringVarP(&temperatures, "temperatures", "t", "", "JSON file replacing the bundled temperature list")

	for _, name := range []string{"mode", "addr", "port", "data", "temperatures"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetDefault("mode", "demo")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)
	viper.SetDefault("data", ".")
	viper.SetEnvPrefix("brewhouse")

	rootCmd.AddCommand(ingredientCmd)
}

func initConfig() {
	viper.AutomaticEnv()
	var err error
	profile, err = _profile.GetProfile()
	if err != nil {
		log.Error("failed to get profile", zap.Error(err))
		return
	}

	println("---")
	println("Server profile")
	println("dsn:", profile.DSN)
	println("addr:", profile.Addr)
	println("port:", profile.Port)
	println("mode:", profile.Mode)
	println("version:", profile.Version)
	println("---")
}

func main() {
	err := Execute()
	if err != nil {
		panic(err)
	}
}
