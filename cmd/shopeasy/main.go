package main

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/admin"
	appservice "github.com/ivankoranteng77/shopeasy-ecommerce/pkg/application/service"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/backend"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/backend/stub"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/common/config"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/service"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/localstore"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/render"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/storage"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "shopeasy",
		Usage: "ShopEasy storefront and admin console",
		Commands: []*cli.Command{
			productsCommand(),
			categoriesCommand(),
			cartCommand(),
			checkoutCommand(),
			adminCommand(),
			stubServerCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

// env bundles the wired-up services behind a single command invocation.
type env struct {
	cfg        *config.Config
	store      localstore.Store
	client     *backend.Client
	storefront appservice.Storefront
	admin      admin.Service
}

func newEnv(confirmer admin.Confirmer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store := localstore.NewFileStore(cfg.StateFile)
	client := backend.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)

	sessionID, err := storage.SessionID(store)
	if err != nil {
		return nil, err
	}

	cart := service.NewCartService(storage.NewCartRepository(store), eventLogger{})
	catalog := service.NewCatalogView()
	checkout := service.NewCheckoutWorkflow(cart, client, eventLogger{}, sessionID)

	return &env{
		cfg:        cfg,
		store:      store,
		client:     client,
		storefront: appservice.NewStorefront(client, catalog, cart, checkout, sessionID),
		admin:      admin.NewService(client, storage.NewCredentialStore(store), confirmer, adminEventLogger{}),
	}, nil
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse the product catalog",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "category", Usage: "filter by category id (0 = all)"},
			&cli.StringFlag{Name: "search", Usage: "case-insensitive name/description filter"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(stdinConfirmer{})
			if err != nil {
				return err
			}
			if err := e.storefront.Load(c.Context); err != nil {
				return err
			}

			catalog := e.storefront.Catalog()
			catalog.SetCategoryFilter(c.Int64("category"))
			catalog.SetSearchQuery(c.String("search"))

			fmt.Print(render.CategoryList(catalog.Categories(), c.Int64("category")))
			fmt.Print(render.ProductGrid(catalog.VisibleProducts()))
			return nil
		},
	}
}

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "list product categories",
		Action: func(c *cli.Context) error {
			e, err := newEnv(stdinConfirmer{})
			if err != nil {
				return err
			}
			categories, err := e.client.FetchCategories(c.Context)
			if err != nil {
				return err
			}
			fmt.Print(render.CategoryList(categories, model.CategoryAll))
			return nil
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "manage the shopping cart",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "add one unit of a product",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					productID, err := parseID(c.Args().First())
					if err != nil {
						return err
					}
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					// Adding needs a fresh product snapshot for the price
					// and stock ceiling.
					if err := e.storefront.Load(c.Context); err != nil {
						return err
					}
					if err := e.storefront.AddToCart(productID); err != nil {
						return err
					}
					return showCart(e)
				},
			},
			{
				Name:      "set",
				Usage:     "set the quantity of a cart entry",
				ArgsUsage: "<product-id> <quantity>",
				Action: func(c *cli.Context) error {
					productID, err := parseID(c.Args().Get(0))
					if err != nil {
						return err
					}
					quantity, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("invalid quantity %q", c.Args().Get(1))
					}
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					if err := e.storefront.Cart().SetQuantity(productID, quantity); err != nil {
						return err
					}
					return showCart(e)
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a product from the cart",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					productID, err := parseID(c.Args().First())
					if err != nil {
						return err
					}
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					if err := e.storefront.Cart().RemoveItem(productID); err != nil {
						return err
					}
					return showCart(e)
				},
			},
			{
				Name:  "show",
				Usage: "show cart contents",
				Action: func(c *cli.Context) error {
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					return showCart(e)
				},
			},
		},
	}
}

func showCart(e *env) error {
	cart := e.storefront.Cart()
	fmt.Print(render.CartView(cart.Items(), cart.TotalCents()))
	return nil
}

func checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "submit the cart as an order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "phone", Required: true},
			&cli.StringFlag{Name: "address", Required: true},
			&cli.StringFlag{Name: "notes"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(stdinConfirmer{})
			if err != nil {
				return err
			}

			orderID, err := e.storefront.Checkout(c.Context, model.ContactInfo{
				Name:    c.String("name"),
				Phone:   c.String("phone"),
				Address: c.String("address"),
				Notes:   c.String("notes"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Order placed! Your order id is %d.\n", orderID)
			return nil
		},
	}
}

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "administration console",
		Subcommands: []*cli.Command{
			{
				Name:  "login",
				Usage: "authenticate and store the bearer credential",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					if err := e.admin.Login(c.Context, c.String("username"), c.String("password")); err != nil {
						return err
					}
					fmt.Println("Login successful.")
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "drop the stored credential",
				Action: func(c *cli.Context) error {
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					return e.admin.Logout()
				},
			},
			{
				Name:  "add-product",
				Usage: "create a product, resolving its category by name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "sku", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.Float64Flag{Name: "price", Required: true, Usage: "price in dollars"},
					&cli.IntFlag{Name: "stock", Required: true},
					&cli.StringFlag{Name: "category", Usage: "category name, created if missing"},
					&cli.StringFlag{Name: "image-url"},
				},
				Action: func(c *cli.Context) error {
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}

					created, err := e.admin.CreateProduct(c.Context, admin.ProductInput{
						Name:          c.String("name"),
						SKU:           c.String("sku"),
						Description:   c.String("description"),
						PriceCents:    int64(math.Round(c.Float64("price") * 100)),
						StockQuantity: c.Int("stock"),
						CategoryName:  c.String("category"),
						ImageURL:      c.String("image-url"),
					})
					if err != nil {
						return err
					}

					fmt.Printf("Product #%d created.\n", created.ID)
					return nil
				},
			},
			{
				Name:      "delete-product",
				Usage:     "delete a product (asks for confirmation)",
				ArgsUsage: "<product-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "skip the confirmation prompt"},
				},
				Action: func(c *cli.Context) error {
					productID, err := parseID(c.Args().First())
					if err != nil {
						return err
					}

					var confirmer admin.Confirmer = stdinConfirmer{}
					if c.Bool("yes") {
						confirmer = autoConfirmer{}
					}
					e, err := newEnv(confirmer)
					if err != nil {
						return err
					}
					if err := e.admin.DeleteProduct(c.Context, productID); err != nil {
						return err
					}

					fmt.Println("Product deleted.")
					return nil
				},
			},
			{
				Name:  "products",
				Usage: "list products",
				Action: func(c *cli.Context) error {
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					products, err := e.admin.ListProducts(c.Context)
					if err != nil {
						return err
					}
					fmt.Print(render.ProductTable(products))
					return nil
				},
			},
			{
				Name:  "orders",
				Usage: "list all orders (requires login)",
				Action: func(c *cli.Context) error {
					e, err := newEnv(stdinConfirmer{})
					if err != nil {
						return err
					}
					orders, err := e.admin.ListOrders(c.Context)
					if err != nil {
						return err
					}
					fmt.Print(render.OrderTable(orders))
					return nil
				},
			},
		},
	}
}

func stubServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "stub-server",
		Usage: "run an in-memory fake backend for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8003"},
			&cli.StringFlag{Name: "username", Value: "admin"},
			&cli.StringFlag{Name: "password", Value: "admin"},
		},
		Action: func(c *cli.Context) error {
			log.SetLevel(log.DebugLevel)

			srv := &http.Server{
				Addr:    c.String("addr"),
				Handler: stub.NewServer(c.String("username"), c.String("password")).Router(),
			}

			go func() {
				log.WithField("addr", srv.Addr).Info("stub backend listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.WithError(err).Fatal("stub backend failed")
				}
			}()

			waitForKillSignal()
			return srv.Shutdown(context.Background())
		},
	}
}

func waitForKillSignal() {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	switch <-killSignalChan {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

// stdinConfirmer asks the terminal user for a yes/no answer.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

type autoConfirmer struct{}

func (autoConfirmer) Confirm(string) bool { return true }

// eventLogger surfaces cart and checkout events where the browser client
// re-rendered the page.
type eventLogger struct{}

func (eventLogger) Dispatch(event service.Event) error {
	log.WithField("event", event.Type()).Debug("storefront event")
	return nil
}

type adminEventLogger struct{}

func (adminEventLogger) Dispatch(event admin.Event) error {
	log.WithField("event", event.Type()).Debug("admin event")
	return nil
}
