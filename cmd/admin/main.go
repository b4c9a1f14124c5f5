package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"resumeapi/internal/auth"
	"resumeapi/internal/config"
	"resumeapi/internal/controller"
	"resumeapi/internal/database"
)

const usage = `用法: admin <command> [flags]

commands:
  create      --username NAME [--password PASS] [--disabled]
  deactivate  --username NAME
  activate    --username NAME
  list
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	username := fs.String("username", "", "用户名（create/deactivate/activate 必填）")
	password := fs.String("password", "", "初始密码（可选，留空则随机生成）")
	disabled := fs.Bool("disabled", false, "创建为停用状态")
	dbType := fs.String("db-type", "", "数据库类型 sqlite|postgres（可选，默认读 DB_TYPE）")
	dbPath := fs.String("db-path", "", "SQLite 文件路径（可选，默认读 DB_PATH）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *dbType != "" {
		cfg.Database.Type = *dbType
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	db, err := database.InitDatabase(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	svc, err := auth.NewAuthService(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.AccessTokenTTL())
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}
	users := controller.NewAuthController(db, svc, logger)

	name := strings.TrimSpace(*username)
	if command != "list" && name == "" {
		return fmt.Errorf("%s: missing required flag --username", command)
	}

	switch command {
	case "create":
		plain := *password
		generated := plain == ""
		if generated {
			if plain, err = generateRandomPassword(24); err != nil {
				return err
			}
		}
		user, err := users.CreateUser(ctx, name, plain, *disabled)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(out, "已创建账号: %s (disabled=%t)\n", user.Username, user.Disabled)
		if generated {
			fmt.Fprintf(out, "初始密码: %s\n", plain)
			fmt.Fprintf(out, "提示：该密码仅显示一次。\n")
		}
	case "deactivate":
		user, err := users.DeactivateUser(ctx, name)
		if err != nil {
			return fmt.Errorf("deactivate user: %w", err)
		}
		fmt.Fprintf(out, "已停用账号: %s\n", user.Username)
	case "activate":
		user, err := users.ActivateUser(ctx, name)
		if err != nil {
			return fmt.Errorf("activate user: %w", err)
		}
		fmt.Fprintf(out, "已启用账号: %s\n", user.Username)
	case "list":
		list, err := users.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "USERNAME\tDISABLED")
		for _, u := range list {
			fmt.Fprintf(tw, "%s\t%t\n", u.Username, u.Disabled)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
	return nil
}

func generateRandomPassword(bytesLen int) (string, error) {
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
