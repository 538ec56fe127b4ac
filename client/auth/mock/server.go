package mock

import "net/http/httptest"

type HTTPTestAttendanceServer struct {
	*AttendanceService
	Server *httptest.Server
	URL    string
}

func NewHTTPTestAttendanceServer(opts ...Option) (*HTTPTestAttendanceServer, error) {
	service, err := NewAttendanceService(opts...)
	if err != nil {
		return nil, err
	}
	server := &HTTPTestAttendanceServer{
		AttendanceService: service,
	}
	server.Server = httptest.NewServer(service.Handler())
	service.Issuer = server.Server.URL
	server.URL = server.Server.URL
	return server, nil
}

func (s *HTTPTestAttendanceServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.AttendanceService = nil
	s.Server = nil
}
