package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")
	api.GET("/collections", s.listCollections)

	records := api.Group("/collections/:collection/records")
	records.GET("/:id", s.getRecord)
	records.GET("/:id/fields/:field", s.getField)
	records.PUT("/:id/fields/:field", s.setField)
}
