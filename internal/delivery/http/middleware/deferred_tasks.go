package middleware

import (
	"contact-form-backend/internal/delivery/http/response"
	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const deferredTasksKey = "DeferredTasks"

// Defer registers task to be queued once the response has been written.
// Handlers call it instead of touching the queue directly so a slow or full
// queue can never delay the reply.
func Defer(c *gin.Context, task *domain.DeliveryTask) {
	if task == nil {
		return
	}
	tasks, _ := c.Get(deferredTasksKey)
	list, _ := tasks.([]*domain.DeliveryTask)
	c.Set(deferredTasksKey, append(list, task))
}

// DeferredTasks hands tasks registered with Defer to queue after the
// downstream handlers have produced the response. Tasks of failed requests
// are discarded. Enqueue errors are logged and the task dropped.
func DeferredTasks(queue domain.TaskQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		tasks, ok := c.Get(deferredTasksKey)
		if !ok {
			return
		}
		list, _ := tasks.([]*domain.DeliveryTask)
		if len(list) == 0 || c.Writer.Status() >= 400 {
			return
		}

		c.Writer.Flush()

		for _, task := range list {
			if err := queue.Enqueue(task); err != nil {
				logger.Log.Error("confirmation email dropped: could not schedule delivery",
					"request_id", c.GetString(response.RequestIDKey),
					"task_id", task.ID.String(),
					"recipient", task.Recipient,
					"error", err,
				)
				continue
			}
			logger.Log.Debug("confirmation email scheduled", "task_id", task.ID.String())
		}
	}
}
