package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fxtae/journal/auth"
)

var signupCmd = &cobra.Command{
	Use:   "signup <name> <email>",
	Short: "Create a journal account and log in",
	Args:  cobra.ExactArgs(2),
	RunE:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to the journal",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the journal",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func openAuth() (*auth.Service, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, closeStore, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	return auth.New(st), closeStore, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openAuth()
	if err != nil {
		return err
	}
	defer closeStore()

	pw, err := readPassword("password: ")
	if err != nil {
		return err
	}

	user, err := svc.SignUp(args[0], args[1], pw)
	if err != nil {
		return err
	}
	fmt.Printf("account created, logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openAuth()
	if err != nil {
		return err
	}
	defer closeStore()

	pw, err := readPassword("password: ")
	if err != nil {
		return err
	}

	user, err := svc.LogIn(args[0], pw)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openAuth()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := svc.LogOut(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openAuth()
	if err != nil {
		return err
	}
	defer closeStore()

	user, err := svc.Current()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (member since %s)\n", user.Name, user.Email,
		user.CreatedAt.Format("2006-01-02"))
	return nil
}
