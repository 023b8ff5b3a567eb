package dtos

// ProducerImportRequest carries the parsed rows of a producer bulk import.
// Rows come from a spreadsheet whose first line is the header, so row N of
// the file maps to index N-2 here.
type ProducerImportRequest struct {
	Producers []ProducerImportItem `json:"producers" binding:"required,min=1,max=1000"`
}

// ProducerImportItem is a single producer row in a bulk import.
type ProducerImportItem struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	FarmName       string `json:"farm_name"`
	Location       string `json:"location"`
	ProductionType string `json:"production_type"`
	Description    string `json:"description"`
}

// ProducerImportResult summarises the outcome of a bulk import.
type ProducerImportResult struct {
	Total         int                  `json:"total"`
	Success       int                  `json:"success"`
	Failed        int                  `json:"failed"`
	FailedDetails []ProducerImportFail `json:"failedDetails"`
}

// ProducerImportFail describes one rejected row. Row is the line number in
// the source file, counting the header as line 1.
type ProducerImportFail struct {
	Row   int                 `json:"row"`
	Data  ProducerImportItem  `json:"data"`
	Error string              `json:"error"`
}
