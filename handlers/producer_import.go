package handlers

import (
	"net/http"
	"strings"
	"sync"

	"digicoop-backend/dtos"
	"digicoop-backend/models"
	"digicoop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// importBatchSize bounds how many producer accounts are created in
// parallel. Batches run sequentially so a large file cannot open an
// unbounded number of connections.
const importBatchSize = 5

// Import creates producer accounts from parsed spreadsheet rows. Rows are
// processed in parallel batches; failures never abort the run, they are
// collected with their source row number. Row numbers count the file
// header as line 1, so row i of the payload is line i+2.
func (h *ProducerHandler) Import(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dtos.ProducerImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	result := h.runImport(cooperativeID, req.Producers, nil)
	c.JSON(http.StatusOK, result)
}

// ImportAsync starts the same import in the background and returns a job ID
// the client polls for progress.
func (h *ProducerHandler) ImportAsync(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dtos.ProducerImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	job := utils.Store.CreateJob(len(req.Producers))
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("producer import job panicked")
				utils.Store.CompleteJob(job.ID, dtos.JobStatusFailed)
			}
		}()
		utils.Store.SetProcessing(job.ID)
		h.runImport(cooperativeID, req.Producers, &job.ID)
		utils.Store.CompleteJob(job.ID, dtos.JobStatusCompleted)
	}()

	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "status": dtos.JobStatusPending})
}

// GetImportJob returns the progress of an asynchronous import.
func (h *ProducerHandler) GetImportJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, exists := utils.Store.GetJob(id)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *ProducerHandler) runImport(cooperativeID uuid.UUID, rows []dtos.ProducerImportItem, jobID *uuid.UUID) dtos.ProducerImportResult {
	result := dtos.ProducerImportResult{
		Total:         len(rows),
		FailedDetails: []dtos.ProducerImportFail{},
	}
	var mu sync.Mutex

	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		var wg sync.WaitGroup
		for offset, row := range rows[start:end] {
			wg.Add(1)
			rowNumber := start + offset + 2
			go func(row dtos.ProducerImportItem, rowNumber int) {
				defer wg.Done()

				err := h.importRow(cooperativeID, row)

				mu.Lock()
				if err != nil {
					result.Failed++
					result.FailedDetails = append(result.FailedDetails, dtos.ProducerImportFail{
						Row:   rowNumber,
						Data:  row,
						Error: err.Error(),
					})
				} else {
					result.Success++
				}
				mu.Unlock()

				if jobID != nil {
					utils.Store.UpdateJob(*jobID, func(job *dtos.BatchJob) {
						job.Processed++
						if err != nil {
							job.Failed++
							job.Errors = append(job.Errors, dtos.ProducerImportFail{
								Row:   rowNumber,
								Data:  row,
								Error: err.Error(),
							})
						} else {
							job.Created++
						}
						if job.Total > 0 {
							job.Progress = job.Processed * 100 / job.Total
						}
					})
				}
			}(row, rowNumber)
		}
		wg.Wait()
	}

	return result
}

type importError struct{ msg string }

func (e *importError) Error() string { return e.msg }

// importRow runs the full create flow for one spreadsheet row: trim,
// default the production type, generate a password, then validate and
// create like a manual submission.
func (h *ProducerHandler) importRow(cooperativeID uuid.UUID, row dtos.ProducerImportItem) error {
	productionType := strings.TrimSpace(row.ProductionType)
	if productionType == "" {
		productionType = "mixed"
	}

	password := utils.GeneratePassword()
	in := ProducerInput{
		FirstName:      strings.TrimSpace(row.FirstName),
		LastName:       strings.TrimSpace(row.LastName),
		Email:          strings.TrimSpace(row.Email),
		Phone:          strings.TrimSpace(row.Phone),
		FarmName:       strings.TrimSpace(row.FarmName),
		Location:       strings.TrimSpace(row.Location),
		ProductionType: productionType,
		Description:    strings.TrimSpace(row.Description),
		Password:       password,
		AccountStatus:  models.ProducerStatusActive,
	}

	if errs := ValidateProducerInput(&in); len(errs) > 0 {
		return &importError{msg: strings.Join(errs, ", ")}
	}

	if h.emailExists(cooperativeID, in.Email) {
		return &importError{msg: "Un producteur avec cet email existe déjà"}
	}

	producer, err := h.createProducerRecord(cooperativeID, &in)
	if err != nil {
		return &importError{msg: utils.UserErrorMessage(err)}
	}

	utils.SendProducerCredentialsEmail(producer.Email, producer.FirstName+" "+producer.LastName, "", password)
	return nil
}
