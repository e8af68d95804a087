package job

import (
	svc "github.com/matchd-cloud/matchd/api/rest/service/job"
)

// Controller binds the job endpoints to the job service.
type Controller struct {
	svc *svc.Service
}

func New(service *svc.Service) *Controller {
	return &Controller{svc: service}
}
