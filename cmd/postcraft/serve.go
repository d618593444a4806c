package main

import (
	"fmt"

	"github.com/fwojciec/postcraft/gin"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := gin.NewServer()
	s.Addr = deps.Config.Server.Addr
	if c.Addr != "" {
		s.Addr = c.Addr
	}
	s.AllowedOrigins = deps.Config.Server.AllowedOrigins
	s.Resolver = deps.Resolver
	s.Generator = deps.Generator
	s.Platforms = deps.Platforms
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	deps.Logger.Info("listening", "url", s.URL(), "origins", s.AllowedOrigins)
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
