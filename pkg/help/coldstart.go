package help

const QuickstartYAML = `# local-rag Quick Start

defaults:
  experiment_name: Local_RAG
  pdf_path: ../RAG-from-Scratch/human-nutrition-text.pdf
  url: https://pressbooks.oer.hawaii.edu/humannutrition2/open/download?type=pdf
  page_offset: 41
  num_pages: 2
  format: yaml
  db_path: local-rag.db

commands:
  run: |
    local-rag run                                  # fetch if missing, print first num_pages
    local-rag run --num_pages 0                    # every page
    local-rag run --sample 5                       # 5 random pages

  fetch: |
    local-rag fetch --url "https://example.com/book.pdf" --pdf_path data/book.pdf
    local-rag fetch --url "https://example.com/landing" --resolve_html

  extract: |
    local-rag extract --pdf_path data/book.pdf --page_offset 0 --format json

  ledger: |
    local-rag runs --limit 10
    local-rag run-pages 3                          # omit the id for the latest run

  config: |
    local-rag run --config experiment.yaml         # flags override the file
    local-rag run --sample 5 --save_options runs/sample.yaml

output:
  stdout: "pages and summary as YAML or JSON (--format)"
  stderr: "options banner (hidden by --quiet) and JSON logs"

page_numbers:
  rule: "page_number = physical index (0-based) - page_offset"
  example: "page_offset 41 makes physical page 41 page_number 0"

exit_codes:
  0: success
  1: invalid options or extraction error
  2: download failed (non-200 response)
`
