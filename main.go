package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nenood/watchlist/caching"
	"github.com/nenood/watchlist/config"
	"github.com/nenood/watchlist/database"
	"github.com/nenood/watchlist/database/model"
	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/util/common"
	"github.com/nenood/watchlist/web"
	"github.com/nenood/watchlist/web/service"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func runWebServer() {
	log.Printf("Starting %v %v", config.GetName(), config.GetVersion())

	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
	defer logger.CloseLogger()

	err = database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		logger.Errorf("Error starting web server: %v", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting web server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				logger.Errorf("Error restarting web server: %v", err)
				return
			}
			logger.Info("Web server restarted successfully.")
		default:
			logger.Info("Shutting down web server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func initDB(drop bool) error {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	defer database.CloseDB()

	if drop {
		if err := database.DropModels(); err != nil {
			return err
		}
		if err := database.MigrateModels(); err != nil {
			return err
		}
	}
	fmt.Println("Initialized database.")
	return nil
}

func forge() error {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	defer database.CloseDB()

	movieService := service.MovieService{}
	if _, err := movieService.Forge(); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

// promptLine reads a single line from stdin after printing label.
func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password twice and checks that both entries match.
// A terminal reads without echo; piped input is read line by line.
func promptPassword(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return confirmPassword(func(label string) (string, error) {
			return promptLine(reader, label)
		})
	}
	return confirmPassword(func(label string) (string, error) {
		fmt.Print(label)
		password, err := term.ReadPassword(fd)
		fmt.Println()
		return string(password), err
	})
}

func confirmPassword(read func(label string) (string, error)) (string, error) {
	first, err := read("Password: ")
	if err != nil {
		return "", err
	}
	second, err := read("Repeat for confirmation: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", common.NewErrorf("the two entered values do not match")
	}
	return first, nil
}

func setAdmin(username string, password string) error {
	reader := bufio.NewReader(os.Stdin)
	var err error
	if username == "" {
		if username, err = promptLine(reader, "Username: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptPassword(reader); err != nil {
			return err
		}
	}
	if username == "" || password == "" {
		return common.NewError("username and password can not be empty")
	}

	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	defer database.CloseDB()

	userService := service.NewUserService(caching.NewCache(caching.DefaultTTL))
	user, err := userService.GetUser(model.AdminID)
	if err == nil && user != nil {
		fmt.Println("Updating user...")
	} else {
		fmt.Println("Creating user...")
	}
	if _, err := userService.SetAdminCredentials(username, password); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Println("load env file failed:", err)
		os.Exit(1)
	}

	var rootCmd = &cobra.Command{
		Use:          config.GetName(),
		Short:        "A personal movie watchlist",
		SilenceUsage: true,
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var initdbCmd = &cobra.Command{
		Use:   "initdb",
		Short: "Initialize the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			drop, _ := cmd.Flags().GetBool("drop")
			return initDB(drop)
		},
	}
	initdbCmd.Flags().Bool("drop", false, "Create after drop.")

	var forgeCmd = &cobra.Command{
		Use:   "forge",
		Short: "Generate fake data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return forge()
		},
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Create or update the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			return setAdmin(username, password)
		},
	}
	adminCmd.Flags().String("username", "", "The username used to login.")
	adminCmd.Flags().String("password", "", "The password used to login.")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetName(), config.GetVersion())
		},
	}

	rootCmd.AddCommand(runCmd, initdbCmd, forgeCmd, adminCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
